package severity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Level
	}{
		{"string off", "off", Off},
		{"string warn", "warn", Warn},
		{"string error", "error", Error},
		{"uppercase", "ERROR", Error},
		{"padded", "  warn ", Warn},
		{"int 0", 0, Off},
		{"int 1", 1, Warn},
		{"int 2", 2, Error},
		{"int64 2", int64(2), Error},
		{"float 1", float64(1), Warn},
		{"digit string", "2", Error},
		{"unknown string", "fatal", Off},
		{"out of range code", 7, Off},
		{"nil", nil, Off},
		{"bool", true, Off},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Level
	}{
		{"bare string", "error", Error},
		{"tuple", []any{"warn", map[string]any{"max": float64(2)}}, Warn},
		{"tuple numeric severity", []any{float64(2), "always"}, Error},
		{"empty tuple", []any{}, Off},
		{"bare numeric", float64(1), Warn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.value); got != tt.want {
				t.Fatalf("Of(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
		actual   Level
		want     bool
	}{
		{"warn satisfied by error", Warn, Error, true},
		{"warn satisfied by warn", Warn, Warn, true},
		{"warn not satisfied by off", Warn, Off, false},
		{"error not satisfied by warn", Error, Warn, false},
		{"error satisfied by error", Error, Error, true},
		{"error not satisfied by off", Error, Off, false},
		{"off satisfied by off", Off, Off, true},
		{"off not satisfied by warn", Off, Warn, false},
		{"off not satisfied by error", Off, Error, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Satisfies(tt.expected, tt.actual); got != tt.want {
				t.Fatalf("Satisfies(%v, %v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}
