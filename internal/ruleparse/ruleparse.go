// Package ruleparse converts extracted rules-block text into rule maps. The
// fast path coerces near-JSON text into strict JSON; hand-authored or
// templated blocks that resist coercion fall through to a tolerant manual
// scan. Both tiers recover the same shape: rule name to rule value, where a
// value is either a bare severity token or a [severity, options...] tuple.
package ruleparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"lintwarden/internal/lexscan"
	"lintwarden/internal/severity"
)

// RuleMap maps a rule identifier (possibly namespaced, e.g. "plugin/rule") to
// its configured value.
type RuleMap map[string]any

var (
	// Bare identifier keys cover namespaced rule names: @scope/plugin/rule,
	// dotted and dashed names.
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([\w$@./-]+)\s*:`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	keyColonRe      = regexp.MustCompile(`(?:"((?:[^"\\]|\\.)+)"|'((?:[^'\\]|\\.)+)'|([\w$@./-]+))\s*:`)
	barewordRe      = regexp.MustCompile(`^[\w.+-]+`)
)

// ParseBlock converts one extracted block's text into a RuleMap. It first
// attempts strict JSON after lexical coercion, then falls back to the manual
// recovery scan. An error is returned only when neither tier recovers any
// rule.
func ParseBlock(block string) (RuleMap, error) {
	if m, err := coerceToJSON(block); err == nil {
		return m, nil
	}
	m := recoverRules(block)
	if len(m) == 0 {
		return nil, errors.New("no rules recovered from block")
	}
	return m, nil
}

// FromSource runs the full recovery pipeline over a configuration file's
// text: extract every balanced rules block, parse each (blocks that fail to
// parse are skipped), and reconcile the results. When the source contains no
// rules block at all it is treated as a bare rule document (a plain JSON-like
// object mapping rule names to values), which is how inherited rule files are
// usually shaped.
func FromSource(src string) (RuleMap, error) {
	blocks := lexscan.ExtractBlocks(src)
	if len(blocks) == 0 {
		clean := strings.TrimSpace(lexscan.Strip(src))
		if !strings.HasPrefix(clean, "{") {
			return nil, errors.New("no rules block found")
		}
		return ParseBlock(clean)
	}

	maps := make([]RuleMap, 0, len(blocks))
	for _, b := range blocks {
		m, err := ParseBlock(b)
		if err != nil {
			continue
		}
		maps = append(maps, m)
	}
	if len(maps) == 0 {
		return nil, errors.New("no rules block could be parsed")
	}
	return Reconcile(maps), nil
}

// Reconcile merges rule maps recovered from multiple blocks into one. When a
// rule appears in more than one block the value with the highest severity
// wins; ties keep the first-seen value. Blocks typically scope to different
// path globs, so taking the strictest value keeps the comparison conservative.
func Reconcile(maps []RuleMap) RuleMap {
	merged := make(RuleMap)
	for _, m := range maps {
		for name, val := range m {
			existing, ok := merged[name]
			if !ok {
				merged[name] = CanonicalValue(val)
				continue
			}
			if severity.Of(val) > severity.Of(existing) {
				merged[name] = CanonicalValue(val)
			}
		}
	}
	return merged
}

// CanonicalValue normalizes a rule value for structural comparison: all
// numeric types become float64 and nested containers are rebuilt as
// []any / map[string]any. This lets values decoded from TOML (int64) compare
// equal to the same values decoded from JSON (float64).
func CanonicalValue(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CanonicalValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = CanonicalValue(e)
		}
		return out
	default:
		return v
	}
}

// EqualValues reports structural equality of two rule values after
// canonicalization.
func EqualValues(a, b any) bool {
	return reflect.DeepEqual(CanonicalValue(a), CanonicalValue(b))
}

// Canonicalize rewrites every value of m in place-equivalent canonical form.
func Canonicalize(m RuleMap) RuleMap {
	out := make(RuleMap, len(m))
	for k, v := range m {
		out[k] = CanonicalValue(v)
	}
	return out
}

// coerceToJSON is the fast parse tier: rewrite single-quoted and backtick
// literals as double-quoted JSON strings, quote bare identifier keys, strip
// trailing commas, then hand the result to the strict JSON decoder.
func coerceToJSON(block string) (RuleMap, error) {
	masked, lits, err := maskAsJSONStrings(block)
	if err != nil {
		return nil, err
	}

	masked = bareKeyRe.ReplaceAllString(masked, `$1"$2":`)
	masked = trailingCommaRe.ReplaceAllString(masked, `$1`)

	for i, lit := range lits {
		masked = strings.Replace(masked, placeholder(i), lit, 1)
	}

	var m RuleMap
	if err := json.Unmarshal([]byte(masked), &m); err != nil {
		return nil, fmt.Errorf("coerced block is not valid JSON: %w", err)
	}
	return m, nil
}

func placeholder(n int) string {
	return "\x00RP" + strconv.Itoa(n) + "\x00"
}

// maskAsJSONStrings replaces every string literal with a placeholder and
// records its double-quoted JSON form, so the key/comma rewrites above cannot
// touch string contents.
func maskAsJSONStrings(block string) (string, []string, error) {
	var b strings.Builder
	b.Grow(len(block))
	var lits []string

	i := 0
	for i < len(block) {
		c := block[i]
		if c == '\'' || c == '"' || c == '`' {
			j := i + 1
			for j < len(block) && !(block[j] == c && !lexscan.Escaped(block, j)) {
				j++
			}
			if j >= len(block) {
				return "", nil, errors.New("unterminated string literal")
			}
			b.WriteString(placeholder(len(lits)))
			lits = append(lits, toJSONString(block[i:j+1]))
			i = j + 1
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), lits, nil
}

func toJSONString(lit string) string {
	q := lit[0]
	body := lit[1 : len(lit)-1]
	if q == '"' {
		return lit
	}
	body = strings.ReplaceAll(body, `\`+string(q), string(q))
	body = strings.ReplaceAll(body, `"`, `\"`)
	return `"` + body + `"`
}

// recoverRules is the tolerant parse tier. It walks the block finding rule
// names followed by a colon, then extracts each value by shape: quoted string
// to its closing quote, bracketed value by depth scan, anything else as a
// greedy bareword. Values are parsed as JSON when possible, else kept as
// dequoted literal strings.
//
// Known limitation: a bareword value that spills into a multi-line nested
// structure is not recovered.
func recoverRules(block string) RuleMap {
	rules := make(RuleMap)

	i := 0
	if strings.HasPrefix(strings.TrimSpace(block), "{") {
		i = strings.IndexByte(block, '{') + 1
	}

	for i < len(block) {
		loc := keyColonRe.FindStringSubmatchIndex(block[i:])
		if loc == nil {
			break
		}
		name := submatch(block[i:], loc, 1)
		if name == "" {
			name = submatch(block[i:], loc, 2)
		}
		if name == "" {
			name = submatch(block[i:], loc, 3)
		}

		vstart := i + loc[1]
		for vstart < len(block) && isSpace(block[vstart]) {
			vstart++
		}
		if vstart >= len(block) {
			break
		}

		raw, next, ok := extractValue(block, vstart)
		if !ok {
			i = vstart + 1
			continue
		}
		if name != "" {
			rules[name] = parseScalar(raw)
		}
		i = next
	}
	return rules
}

func submatch(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return s[loc[2*n]:loc[2*n+1]]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// extractValue reads one value starting at block[i] and returns its raw text
// plus the position just past it.
func extractValue(block string, i int) (raw string, next int, ok bool) {
	switch c := block[i]; {
	case c == '\'' || c == '"' || c == '`':
		for j := i + 1; j < len(block); j++ {
			if block[j] == c && !lexscan.Escaped(block, j) {
				return block[i : j+1], j + 1, true
			}
		}
		return "", 0, false
	case c == '[' || c == '{':
		end, balanced := lexscan.Balanced(block, i)
		if !balanced {
			return "", 0, false
		}
		return block[i : end+1], end + 1, true
	default:
		m := barewordRe.FindString(block[i:])
		if m == "" {
			return "", 0, false
		}
		return m, i + len(m), true
	}
}

func parseScalar(raw string) any {
	if v, err := coerceValue(raw); err == nil {
		return v
	}
	if len(raw) >= 2 {
		if q := raw[0]; (q == '\'' || q == '"' || q == '`') && raw[len(raw)-1] == q {
			return strings.ReplaceAll(raw[1:len(raw)-1], `\`+string(q), string(q))
		}
	}
	return raw
}

// coerceValue applies the same lexical JSON coercion used for whole blocks to
// a single value, so nested containers with single quotes or trailing commas
// still parse on the tolerant tier.
func coerceValue(raw string) (any, error) {
	masked, lits, err := maskAsJSONStrings(raw)
	if err != nil {
		return nil, err
	}
	masked = bareKeyRe.ReplaceAllString(masked, `$1"$2":`)
	masked = trailingCommaRe.ReplaceAllString(masked, `$1`)
	for i, lit := range lits {
		masked = strings.Replace(masked, placeholder(i), lit, 1)
	}
	var v any
	if err := json.Unmarshal([]byte(masked), &v); err != nil {
		return nil, err
	}
	return v, nil
}
