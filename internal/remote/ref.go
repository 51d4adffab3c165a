// Package remote resolves compact version-pinned references like
// github:acme/std/rules/ts@v2.0.0 to locally cached file content, via
// clone-or-fetch of the referenced repository.
package remote

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// refGrammar is restated in every parse error so the user can fix the string
// without reading docs.
const refGrammar = "host:owner/repo[/path]@version (e.g. github:acme/std/rules/ts@v2.0.0)"

// Ref identifies a versioned file or directory in an external repository.
// Version is a tag, a branch/ref name, or the sentinel "latest" (the
// repository's default branch head, never a tag).
type Ref struct {
	Host    string
	Owner   string
	Repo    string
	Path    string
	Version string
}

func (r Ref) String() string {
	s := r.Host + ":" + r.Owner + "/" + r.Repo
	if r.Path != "" {
		s += "/" + r.Path
	}
	return s + "@" + r.Version
}

// ParseError reports a remote reference that does not match the grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid remote reference %q: %s; expected %s", e.Input, e.Reason, refGrammar)
}

// ParseRef parses a compact remote reference. It performs no I/O; a manifest
// can be validated against the grammar before any network access is
// attempted.
func ParseRef(input string) (Ref, error) {
	host, rest, ok := strings.Cut(input, ":")
	if !ok || host == "" {
		return Ref{}, &ParseError{Input: input, Reason: "missing host scheme"}
	}
	if host != "github" {
		return Ref{}, &ParseError{Input: input, Reason: fmt.Sprintf("unsupported host %q", host)}
	}

	loc, version, ok := cutLast(rest, "@")
	if !ok || version == "" {
		return Ref{}, &ParseError{Input: input, Reason: "missing @version"}
	}

	parts := strings.Split(loc, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, &ParseError{Input: input, Reason: "missing owner/repo"}
	}
	for _, p := range parts {
		if p == "" {
			return Ref{}, &ParseError{Input: input, Reason: "empty path segment"}
		}
	}

	return Ref{
		Host:    host,
		Owner:   parts[0],
		Repo:    parts[1],
		Path:    strings.Join(parts[2:], "/"),
		Version: version,
	}, nil
}

// CacheKey is a short hex digest of (host, owner, repo, version). References
// that differ only in Path share a cache entry; references that differ in
// version never do.
func (r Ref) CacheKey() string {
	h := sha256.New()
	for _, part := range []string{r.Host, r.Owner, r.Repo, r.Version} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
