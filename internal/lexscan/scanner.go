// Package lexscan recovers rule declarations from linter configuration files
// that are small programs rather than plain data. It is strictly lexical:
// string masking, comment stripping, and bracket-depth counting. It never
// parses the host language, and a malformed block is dropped rather than
// failing the whole scan.
package lexscan

import (
	"regexp"
	"strconv"
	"strings"
)

// Quote characters recognized by the scanner. Backtick covers template
// literals in JS-style configs.
const quoteChars = "'\"`"

var blockStartRe = regexp.MustCompile(`["']?rules["']?\s*[:=]?\s*\{`)

// Strip removes // and /* */ comments from src while leaving string literals
// untouched. String literals are masked with unique placeholder tokens before
// comment spans are removed, then restored verbatim; this ordering is what
// keeps comment-like sequences inside strings (e.g. a rule option of
// "//not a comment") from being eaten.
func Strip(src string) string {
	masked, lits := maskStrings(src)
	masked = stripComments(masked)
	for i, lit := range lits {
		masked = strings.Replace(masked, placeholder(i), lit, 1)
	}
	return masked
}

// ExtractBlocks returns the text of every balanced rules block in src, after
// comment stripping. A block is a "rules" keyword (bare or quoted, followed by
// an optional : or =) and its brace-balanced body. Blocks whose opening brace
// never balances are dropped silently; the remaining blocks still contribute.
func ExtractBlocks(src string) []string {
	clean := Strip(src)

	var blocks []string
	next := 0
	for _, loc := range blockStartRe.FindAllStringIndex(clean, -1) {
		open := loc[1] - 1
		if open < next {
			// Inside a block we already emitted.
			continue
		}
		end, ok := Balanced(clean, open)
		if !ok {
			continue
		}
		blocks = append(blocks, clean[open:end+1])
		next = end + 1
	}
	return blocks
}

// Balanced scans forward from the opening bracket at s[open] and returns the
// index of the matching closer. Both {} and [] contribute to depth, and quoted
// spans are skipped (with escape detection) so brackets inside string values
// do not perturb the count. ok is false when the bracket never balances.
func Balanced(s string, open int) (end int, ok bool) {
	depth := 0
	i := open
	for i < len(s) {
		c := s[i]
		if strings.IndexByte(quoteChars, c) >= 0 {
			j := closingQuote(s, i)
			if j < 0 {
				return 0, false
			}
			i = j + 1
			continue
		}
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i++
	}
	return 0, false
}

// Escaped reports whether the character at s[i] is backslash-escaped. An odd
// number of consecutive preceding backslashes means escaped.
func Escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// closingQuote returns the index of the closing quote for the literal opening
// at s[i], or -1 if unterminated.
func closingQuote(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == q && !Escaped(s, j) {
			return j
		}
	}
	return -1
}

func placeholder(n int) string {
	return "\x00LS" + strconv.Itoa(n) + "\x00"
}

func maskStrings(src string) (string, []string) {
	var b strings.Builder
	b.Grow(len(src))
	var lits []string

	i := 0
	for i < len(src) {
		c := src[i]
		if strings.IndexByte(quoteChars, c) >= 0 {
			j := closingQuote(src, i)
			if j < 0 {
				// Unterminated literal: keep the tail as-is.
				b.WriteString(src[i:])
				break
			}
			b.WriteString(placeholder(len(lits)))
			lits = append(lits, src[i:j+1])
			i = j + 1
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), lits
}

func stripComments(masked string) string {
	var b strings.Builder
	b.Grow(len(masked))

	i := 0
	for i < len(masked) {
		if strings.HasPrefix(masked[i:], "//") {
			nl := strings.IndexByte(masked[i:], '\n')
			if nl < 0 {
				break
			}
			i += nl // keep the newline
			continue
		}
		if strings.HasPrefix(masked[i:], "/*") {
			end := strings.Index(masked[i+2:], "*/")
			if end < 0 {
				break
			}
			b.WriteByte(' ')
			i += 2 + end + 2
			continue
		}
		b.WriteByte(masked[i])
		i++
	}
	return b.String()
}
