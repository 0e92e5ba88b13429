package agent

// Status is the agent's position in its lifecycle state machine.
//
// Actable transitions to any other status on decision resolution. Acting,
// Sleeping and Moving return to Actable when the action timer runs out.
// Dead is absorbing.
type Status int

const (
	Actable Status = iota
	Acting
	Sleeping
	Moving
	Dead
)

var statusNames = [...]string{
	Actable:  "actable",
	Acting:   "acting",
	Sleeping: "sleeping",
	Moving:   "moving",
	Dead:     "dead",
}

// String returns the lowercase status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Busy reports whether the status is a timed activity.
func (s Status) Busy() bool {
	return s == Acting || s == Sleeping || s == Moving
}
