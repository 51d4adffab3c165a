package remote

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Ref
		wantErr bool
	}{
		{
			name:  "full reference with path",
			input: "github:acme/std/rules/ts@v2.0.0",
			want:  Ref{Host: "github", Owner: "acme", Repo: "std", Path: "rules/ts", Version: "v2.0.0"},
		},
		{
			name:  "no path",
			input: "github:acme/std@latest",
			want:  Ref{Host: "github", Owner: "acme", Repo: "std", Version: "latest"},
		},
		{
			name:  "deep path and branch version",
			input: "github:acme/std/configs/lint/eslint.json@release/2024",
			want:  Ref{Host: "github", Owner: "acme", Repo: "std", Path: "configs/lint/eslint.json", Version: "release/2024"},
		},
		{
			name:  "version containing at-like tag",
			input: "github:acme/std@v1.0.0-rc.1",
			want:  Ref{Host: "github", Owner: "acme", Repo: "std", Version: "v1.0.0-rc.1"},
		},
		{name: "missing scheme", input: "acme/std@v1", wantErr: true},
		{name: "unsupported host", input: "gitlab:acme/std@v1", wantErr: true},
		{name: "missing version", input: "github:acme/std", wantErr: true},
		{name: "empty version", input: "github:acme/std@", wantErr: true},
		{name: "missing repo", input: "github:acme@v1", wantErr: true},
		{name: "empty segment", input: "github:acme//std@v1", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRef(%q) succeeded with %+v, want error", tt.input, got)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("error type = %T, want *ParseError", err)
				}
				msg := err.Error()
				if !strings.Contains(msg, tt.input) && tt.input != "" {
					t.Errorf("error %q does not quote the input", msg)
				}
				if !strings.Contains(msg, "host:owner/repo[/path]@version") {
					t.Errorf("error %q does not restate the grammar", msg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseRef(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRefString(t *testing.T) {
	for _, s := range []string{"github:acme/std/rules/ts@v2.0.0", "github:acme/std@latest"} {
		ref, err := ParseRef(s)
		if err != nil {
			t.Fatalf("ParseRef(%q) error: %v", s, err)
		}
		if ref.String() != s {
			t.Errorf("round trip %q -> %q", s, ref.String())
		}
	}
}

func TestCacheKey(t *testing.T) {
	a := Ref{Host: "github", Owner: "acme", Repo: "std", Path: "rules/ts", Version: "v2.0.0"}
	b := a
	b.Path = "rules/go"
	c := a
	c.Version = "v2.0.1"

	if a.CacheKey() != b.CacheKey() {
		t.Error("refs differing only in path must share a cache entry")
	}
	if a.CacheKey() == c.CacheKey() {
		t.Error("refs differing in version must not share a cache entry")
	}
	if a.CacheKey() != a.CacheKey() {
		t.Error("cache key must be deterministic")
	}
	if len(a.CacheKey()) != 16 {
		t.Errorf("cache key length = %d, want 16", len(a.CacheKey()))
	}
}
