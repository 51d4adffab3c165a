// Package audit compares an expected rule map against the rules actually
// recovered from a configuration file. Mismatches are audit output, not
// errors: every rule is checked and the full list is returned.
package audit

import (
	"fmt"

	"lintwarden/internal/ruleparse"
	"lintwarden/internal/severity"
)

type MismatchKind string

const (
	KindMissing   MismatchKind = "missing"
	KindDifferent MismatchKind = "different"
	KindExtra     MismatchKind = "extra"
)

// Mismatch is one detected discrepancy between expected and actual
// configuration. Expected is unset for extra, Actual for missing.
type Mismatch struct {
	Rule     string       `json:"rule"`
	Kind     MismatchKind `json:"kind"`
	Expected any          `json:"expected,omitempty"`
	Actual   any          `json:"actual,omitempty"`
}

func (m Mismatch) String() string {
	switch m.Kind {
	case KindMissing:
		return fmt.Sprintf("%s: expected %v, not configured", m.Rule, m.Expected)
	case KindExtra:
		return fmt.Sprintf("%s: not expected, actual %v", m.Rule, m.Actual)
	default:
		return fmt.Sprintf("%s: expected %v, actual %v", m.Rule, m.Expected, m.Actual)
	}
}

// Mode selects which comparator an audit runs.
type Mode string

const (
	// ModeSeverity audits rule severities: extras are permitted, and an
	// actual severity stricter than the expected one passes.
	ModeSeverity Mode = "severity"
	// ModeExact audits structural settings (e.g. compiler flags): values
	// must match structurally and actual-only keys are flagged.
	ModeExact Mode = "exact"
)

// Compare audits actual against expected on the rule-severity axis. A rule
// absent from actual is missing; a rule whose actual severity does not
// satisfy the expected one is different. Keys present only in actual are
// never flagged; projects may layer additional local rules.
func Compare(expected, actual ruleparse.RuleMap) []Mismatch {
	var out []Mismatch
	for _, rule := range sortedKeys(expected) {
		want := expected[rule]
		got, ok := actual[rule]
		if !ok {
			out = append(out, Mismatch{Rule: rule, Kind: KindMissing, Expected: want})
			continue
		}
		if !severity.Satisfies(severity.Of(want), severity.Of(got)) {
			out = append(out, Mismatch{Rule: rule, Kind: KindDifferent, Expected: want, Actual: got})
		}
	}
	return out
}

// CompareExact audits the full key set with structural equality: missing and
// different as in Compare (but by value, not severity), plus extra for every
// key actual defines that expected does not.
func CompareExact(expected, actual ruleparse.RuleMap) []Mismatch {
	var out []Mismatch
	for _, rule := range sortedKeys(expected) {
		want := expected[rule]
		got, ok := actual[rule]
		if !ok {
			out = append(out, Mismatch{Rule: rule, Kind: KindMissing, Expected: want})
			continue
		}
		if !ruleparse.EqualValues(want, got) {
			out = append(out, Mismatch{Rule: rule, Kind: KindDifferent, Expected: want, Actual: got})
		}
	}
	for _, rule := range sortedKeys(actual) {
		if _, ok := expected[rule]; !ok {
			out = append(out, Mismatch{Rule: rule, Kind: KindExtra, Actual: actual[rule]})
		}
	}
	return out
}

// Run dispatches to the comparator selected by mode.
func Run(mode Mode, expected, actual ruleparse.RuleMap) ([]Mismatch, error) {
	switch mode {
	case ModeSeverity, "":
		return Compare(expected, actual), nil
	case ModeExact:
		return CompareExact(expected, actual), nil
	default:
		return nil, fmt.Errorf("unsupported audit mode: %s (must be one of: severity, exact)", mode)
	}
}
