package audit

import (
	"testing"

	"lintwarden/internal/ruleparse"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		expected ruleparse.RuleMap
		actual   ruleparse.RuleMap
		want     []Mismatch
	}{
		{
			name:     "stricter actual passes",
			expected: ruleparse.RuleMap{"no-console": "warn"},
			actual:   ruleparse.RuleMap{"no-console": "error"},
			want:     nil,
		},
		{
			name:     "tuple actual satisfies bare expected",
			expected: ruleparse.RuleMap{"eqeqeq": "error"},
			actual:   ruleparse.RuleMap{"eqeqeq": []any{"error", "always"}},
			want:     nil,
		},
		{
			name:     "weaker actual is different",
			expected: ruleparse.RuleMap{"no-console": "error"},
			actual:   ruleparse.RuleMap{"no-console": "warn"},
			want: []Mismatch{
				{Rule: "no-console", Kind: KindDifferent, Expected: "error", Actual: "warn"},
			},
		},
		{
			name:     "absent rule is missing",
			expected: ruleparse.RuleMap{"semi": "warn"},
			actual:   ruleparse.RuleMap{},
			want: []Mismatch{
				{Rule: "semi", Kind: KindMissing, Expected: "warn"},
			},
		},
		{
			name:     "extras never flagged",
			expected: ruleparse.RuleMap{"semi": "warn"},
			actual:   ruleparse.RuleMap{"semi": "warn", "local-extra": "error"},
			want:     nil,
		},
		{
			name:     "off expected requires off",
			expected: ruleparse.RuleMap{"no-debugger": "off"},
			actual:   ruleparse.RuleMap{"no-debugger": "warn"},
			want: []Mismatch{
				{Rule: "no-debugger", Kind: KindDifferent, Expected: "off", Actual: "warn"},
			},
		},
		{
			name:     "numeric encoding satisfies",
			expected: ruleparse.RuleMap{"semi": "warn"},
			actual:   ruleparse.RuleMap{"semi": float64(2)},
			want:     nil,
		},
		{
			name: "all rules checked, not first failure",
			expected: ruleparse.RuleMap{
				"a": "error",
				"b": "error",
				"c": "warn",
			},
			actual: ruleparse.RuleMap{"b": "off", "c": "error"},
			want: []Mismatch{
				{Rule: "a", Kind: KindMissing, Expected: "error"},
				{Rule: "b", Kind: KindDifferent, Expected: "error", Actual: "off"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.expected, tt.actual)
			assertMismatches(t, got, tt.want)
		})
	}
}

func TestCompareExact(t *testing.T) {
	expected := ruleparse.RuleMap{
		"strict":          true,
		"target":          "es2022",
		"noUnusedLocals":  true,
		"moduleDetection": "force",
	}
	actual := ruleparse.RuleMap{
		"strict":          true,
		"target":          "es5",
		"moduleDetection": "force",
		"skipLibCheck":    true,
	}

	got := CompareExact(expected, actual)
	want := []Mismatch{
		{Rule: "noUnusedLocals", Kind: KindMissing, Expected: true},
		{Rule: "target", Kind: KindDifferent, Expected: "es2022", Actual: "es5"},
		{Rule: "skipLibCheck", Kind: KindExtra, Actual: true},
	}
	assertMismatches(t, got, want)
}

func TestCompareExact_NumericEncodings(t *testing.T) {
	// TOML int64 vs JSON float64 must compare equal.
	got := CompareExact(
		ruleparse.RuleMap{"maxWorkers": int64(4)},
		ruleparse.RuleMap{"maxWorkers": float64(4)},
	)
	if len(got) != 0 {
		t.Fatalf("want no mismatches, got %v", got)
	}
}

func TestRun(t *testing.T) {
	expected := ruleparse.RuleMap{"a": "warn"}
	actual := ruleparse.RuleMap{"a": "error", "b": "off"}

	t.Run("severity mode permits extras", func(t *testing.T) {
		got, err := Run(ModeSeverity, expected, actual)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("want no mismatches, got %v", got)
		}
	})

	t.Run("empty mode defaults to severity", func(t *testing.T) {
		got, err := Run("", expected, actual)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("want no mismatches, got %v", got)
		}
	})

	t.Run("exact mode flags everything", func(t *testing.T) {
		got, err := Run(ModeExact, expected, actual)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("want 2 mismatches, got %v", got)
		}
	})

	t.Run("unknown mode errors", func(t *testing.T) {
		if _, err := Run("fuzzy", expected, actual); err == nil {
			t.Fatal("expected error")
		}
	})
}

func assertMismatches(t *testing.T, got, want []Mismatch) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d mismatches %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].Rule != want[i].Rule || got[i].Kind != want[i].Kind {
			t.Errorf("mismatch %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
