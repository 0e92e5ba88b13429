package action

import "errors"

// Classification failure kinds. Every one of them degrades the actor's tick to
// a Wait.
var (
	// ErrLookup is returned when an agent or area id does not resolve.
	ErrLookup = errors.New("action: lookup failed")
	// ErrMissingField is returned when a field required by the kind is absent.
	ErrMissingField = errors.New("action: missing required field")
	// ErrUnknownKind is returned for an unrecognised action tag.
	ErrUnknownKind = errors.New("action: unknown kind")
	// ErrValidation is returned when the oracle denies or garbles an Other action.
	ErrValidation = errors.New("action: validation failed")
)
