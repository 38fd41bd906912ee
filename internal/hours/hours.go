// Package hours converts wall-clock times into decimal hour counts.
//
// Historical log files store times inconsistently: new entries arrive as
// hour/minute pairs, older rows may hold "HH:MM" strings or plain numbers.
// All conversion funnels through here so every caller gets the same rounding
// and the same pass-through behavior for values that cannot be parsed.
package hours

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result is the outcome of normalizing a single value. Exactly one of the
// two shapes applies: Normalized carries Value, otherwise Original holds
// the input unchanged. Malformed legacy values are tolerated, not repaired,
// so they must round-trip through CSV byte-for-byte.
type Result struct {
	Value      float64
	Original   string
	Normalized bool
}

// String renders the result for CSV serialization: the decimal value when
// normalized, the untouched original otherwise.
func (r Result) String() string {
	if r.Normalized {
		return strconv.FormatFloat(r.Value, 'f', -1, 64)
	}
	return r.Original
}

// IsZero reports whether the result holds neither a value nor an original
// string, i.e. the column was absent.
func (r Result) IsZero() bool {
	return !r.Normalized && r.Original == ""
}

// FromClock converts an hour/minute pair to decimal hours, rounded to two
// decimal places. Used at entry-creation time where inputs are always valid.
func FromClock(hour, minute int) float64 {
	return round2(float64(hour) + float64(minute)/60)
}

// FromDecimal wraps an already-numeric value as a normalized result.
func FromDecimal(v float64) Result {
	return Result{Value: round2(v), Normalized: true}
}

// Normalize converts a textual time value to decimal hours.
//
// Values containing a ':' are parsed as "H:MM"/"HH:MM"; values without one
// are parsed as plain numbers. Any parse failure (wrong component count,
// non-numeric component, empty string) yields the original value unchanged.
// Normalize never returns an error and never panics.
func Normalize(raw string) Result {
	unchanged := Result{Original: raw}

	if strings.Contains(raw, ":") {
		parts := strings.Split(raw, ":")
		if len(parts) != 2 {
			return unchanged
		}
		h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return unchanged
		}
		m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return unchanged
		}
		return Result{Value: FromClock(h, m), Normalized: true}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return unchanged
	}
	return Result{Value: round2(v), Normalized: true}
}

// Clock renders a decimal hour count back as "HH:MM" for form display.
func Clock(v float64) string {
	total := int(math.Round(v * 60))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
