package audit

import (
	"sort"

	"lintwarden/internal/ruleparse"
)

// sortedKeys keeps mismatch order deterministic across runs.
func sortedKeys(m ruleparse.RuleMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
