// Package severity defines the enforcement levels a linter rule can carry and
// the asymmetric "satisfies" relation used by audits.
package severity

import (
	"strconv"
	"strings"
)

// Level is a rule's enforcement level. Levels are totally ordered:
// Off < Warn < Error.
type Level int

const (
	Off Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "off"
	}
}

// Normalize maps the encodings found in real configuration files onto a Level.
// Accepted forms: "off"/"warn"/"error" (any case), the numeric codes 0/1/2 as
// integers, floats, or digit strings. Anything unrecognized normalizes to Off.
func Normalize(raw any) Level {
	switch v := raw.(type) {
	case string:
		return fromString(v)
	case int:
		return fromCode(v)
	case int64:
		return fromCode(int(v))
	case float64:
		return fromCode(int(v))
	case Level:
		return v
	default:
		return Off
	}
}

func fromString(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "off":
		return Off
	case "warn":
		return Warn
	case "error":
		return Error
	}
	if n, err := strconv.Atoi(s); err == nil {
		return fromCode(n)
	}
	return Off
}

func fromCode(n int) Level {
	switch n {
	case 1:
		return Warn
	case 2:
		return Error
	default:
		return Off
	}
}

// Of returns the severity position of a rule value: the first element when the
// value is the [severity, options...] tuple form, otherwise the value itself.
func Of(value any) Level {
	if arr, ok := value.([]any); ok {
		if len(arr) == 0 {
			return Off
		}
		return Normalize(arr[0])
	}
	return Normalize(value)
}

// Satisfies reports whether an actual level meets an expected one.
//
// The relation is deliberately asymmetric: raising a rule's severity locally is
// never a deviation, lowering it always is. Off is satisfied only by Off, Error
// only by Error, and Warn by Warn or Error.
func Satisfies(expected, actual Level) bool {
	switch expected {
	case Off:
		return actual == Off
	case Error:
		return actual == Error
	default:
		return actual == Warn || actual == Error
	}
}
