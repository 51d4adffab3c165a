// Package inherit combines rule maps inherited from a remote source with
// local overrides. Local configuration may add rules but never shadow
// inherited ones; a disagreement is a governance violation and fails fast.
package inherit

import (
	"fmt"

	"lintwarden/internal/ruleparse"
)

// ConflictError reports a local rule value that would shadow an inherited one.
// It is terminal: the project must either match the inherited value or remove
// its local declaration.
type ConflictError struct {
	Tool      string
	Rule      string
	Inherited any
	Local     any
	// Source is the remote reference the inherited value came from.
	Source string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"conflict for tool %q: rule %q is inherited from %s as %v but declared locally as %v; match the inherited value or remove the local declaration",
		e.Tool, e.Rule, e.Source, e.Inherited, e.Local,
	)
}

// Merge combines an inherited RuleMap with local overrides for one tool. A
// key present in both maps with structurally unequal values yields a
// ConflictError naming both values and the inherited source. Keys present
// only locally pass through unchanged.
func Merge(tool, source string, inherited, local ruleparse.RuleMap) (ruleparse.RuleMap, error) {
	merged := make(ruleparse.RuleMap, len(inherited)+len(local))
	for rule, val := range inherited {
		merged[rule] = ruleparse.CanonicalValue(val)
	}
	for rule, val := range local {
		inheritedVal, shared := inherited[rule]
		if !shared {
			merged[rule] = ruleparse.CanonicalValue(val)
			continue
		}
		if !ruleparse.EqualValues(inheritedVal, val) {
			return nil, &ConflictError{
				Tool:      tool,
				Rule:      rule,
				Inherited: inheritedVal,
				Local:     val,
				Source:    source,
			}
		}
	}
	return merged, nil
}
