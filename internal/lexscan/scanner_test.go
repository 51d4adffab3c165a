package lexscan

import (
	"strings"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "line comment removed",
			src:  "a = 1 // trailing\nb = 2",
			want: "a = 1 \nb = 2",
		},
		{
			name: "block comment removed",
			src:  "a/* gone */b",
			want: "a b",
		},
		{
			name: "comment-like sequence inside string survives",
			src:  `x = "//not a comment"`,
			want: `x = "//not a comment"`,
		},
		{
			name: "block-comment markers inside string survive",
			src:  `x = "/* keep */" // drop`,
			want: `x = "/* keep */" `,
		},
		{
			name: "escaped quote does not end the literal",
			src:  `x = "a\"b // still string"`,
			want: `x = "a\"b // still string"`,
		},
		{
			name: "double-escaped backslash ends the literal",
			src:  "x = \"a\\\\\" // comment\ny",
			want: "x = \"a\\\\\" \ny",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.src)
			if got != tt.want {
				t.Fatalf("Strip(%q) = %q, want %q", tt.src, got, tt.want)
			}
			if strings.Contains(got, "\x00") {
				t.Fatalf("residual placeholder token in %q", got)
			}
		})
	}
}

func TestExtractBlocks(t *testing.T) {
	t.Run("single block", func(t *testing.T) {
		src := `module.exports = {
			rules: {
				"no-console": "error", // keep strict
			},
		};`
		blocks := ExtractBlocks(src)
		if len(blocks) != 1 {
			t.Fatalf("want 1 block, got %d", len(blocks))
		}
		if !strings.Contains(blocks[0], `"no-console"`) {
			t.Errorf("block missing rule: %q", blocks[0])
		}
		if strings.Contains(blocks[0], "keep strict") {
			t.Errorf("comment not stripped from block: %q", blocks[0])
		}
	})

	t.Run("multiple blocks from overrides", func(t *testing.T) {
		src := `{
			"rules": {"a": "error"},
			"overrides": [
				{"files": ["tests/**"], "rules": {"a": "off"}}
			]
		}`
		blocks := ExtractBlocks(src)
		if len(blocks) != 2 {
			t.Fatalf("want 2 blocks, got %d: %v", len(blocks), blocks)
		}
	})

	t.Run("brace inside string value does not break depth", func(t *testing.T) {
		src := `rules: { "x": "a { b", "y": "error" }`
		blocks := ExtractBlocks(src)
		if len(blocks) != 1 {
			t.Fatalf("want 1 block, got %d", len(blocks))
		}
		if !strings.Contains(blocks[0], `"y": "error"`) {
			t.Errorf("block truncated: %q", blocks[0])
		}
	})

	t.Run("unbalanced block dropped, valid block kept", func(t *testing.T) {
		src := "rules: { broken \n" + `other = 1; rules = {"ok": "warn"}`
		blocks := ExtractBlocks(src)
		if len(blocks) != 1 {
			t.Fatalf("want 1 block, got %d: %v", len(blocks), blocks)
		}
		if !strings.Contains(blocks[0], `"ok"`) {
			t.Errorf("wrong block survived: %q", blocks[0])
		}
	})

	t.Run("no rules keyword", func(t *testing.T) {
		if blocks := ExtractBlocks("const a = { b: 1 }"); len(blocks) != 0 {
			t.Fatalf("want 0 blocks, got %v", blocks)
		}
	})
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		open    int
		wantEnd int
		wantOK  bool
	}{
		{"flat object", `{a}`, 0, 2, true},
		{"nested", `{a{b}c}`, 0, 6, true},
		{"array value inside object", `{"a": [1, 2]}`, 0, 12, true},
		{"array opener", `["x", {"y": 1}]`, 0, 14, true},
		{"closer inside string ignored", `{"a": "}"}`, 0, 9, true},
		{"escaped quote inside string", `{"a": "\"}"}`, 0, 11, true},
		{"never balances", `{a`, 0, 0, false},
		{"unterminated string", `{"a`, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := Balanced(tt.s, tt.open)
			if ok != tt.wantOK || (ok && end != tt.wantEnd) {
				t.Fatalf("Balanced(%q, %d) = (%d, %v), want (%d, %v)", tt.s, tt.open, end, ok, tt.wantEnd, tt.wantOK)
			}
		})
	}
}

func TestEscaped(t *testing.T) {
	tests := []struct {
		s    string
		i    int
		want bool
	}{
		{`a\"`, 2, true},
		{`a\\"`, 3, false},
		{`a\\\"`, 4, true},
		{`a"`, 1, false},
	}
	for _, tt := range tests {
		if got := Escaped(tt.s, tt.i); got != tt.want {
			t.Errorf("Escaped(%q, %d) = %v, want %v", tt.s, tt.i, got, tt.want)
		}
	}
}
