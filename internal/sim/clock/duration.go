package clock

import (
	"fmt"
	"regexp"
	"strconv"
)

// MaxParseDays bounds a parsed duration; longer expressions are rejected.
const MaxParseDays = 10_000

// durationPattern matches a compact ISO-8601 style duration such as P1D,
// PT3H, PT30M or P1DT2H30M anywhere in the input.
var durationPattern = regexp.MustCompile(`(?i)P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?`)

// Parse converts a duration expression to ticks. Absent components count as
// zero, so text with no recognizable component yields zero ticks. Magnitudes
// are normalised before conversion: PT90M is one hour thirty minutes.
//
// Postcondition: Returns ticks >= 0, or an error if a magnitude does not fit
// an int or the total exceeds MaxParseDays (wrapping ErrInvalidRange).
func Parse(text string) (int, error) {
	for _, m := range durationPattern.FindAllStringSubmatch(text, -1) {
		if m[1] == "" && m[2] == "" && m[3] == "" {
			continue
		}
		day, err := component(m[1])
		if err != nil {
			return 0, fmt.Errorf("parsing days in %q: %w", text, err)
		}
		hour, err := component(m[2])
		if err != nil {
			return 0, fmt.Errorf("parsing hours in %q: %w", text, err)
		}
		minute, err := component(m[3])
		if err != nil {
			return 0, fmt.Errorf("parsing minutes in %q: %w", text, err)
		}
		if day > MaxParseDays || hour > MaxParseDays*24 || minute > MaxParseDays*24*60 {
			return 0, fmt.Errorf("%w: duration %q exceeds %d days", ErrInvalidRange, m[0], MaxParseDays)
		}
		total := (day*24+hour)*60 + minute
		if total > MaxParseDays*24*60 {
			return 0, fmt.Errorf("%w: duration %q exceeds %d days", ErrInvalidRange, m[0], MaxParseDays)
		}
		return Calc(total/(24*60), (total/60)%24, total%60)
	}
	return 0, nil
}

// Format renders ticks in the same compact form Parse accepts.
func Format(ticks int) string {
	day, hour, minute := Evaluate(ticks)
	s := "P"
	if day > 0 {
		s += strconv.Itoa(day) + "D"
	}
	if hour > 0 || minute > 0 || day == 0 {
		s += "T"
		if hour > 0 {
			s += strconv.Itoa(hour) + "H"
		}
		if minute > 0 || (hour == 0 && day == 0) {
			s += strconv.Itoa(minute) + "M"
		}
	}
	return s
}

func component(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
