package notation

import "testing"

// TestParse covers the "<n> × <rest>" grammar and the graceful fallback for
// free-form input.
func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantCount int
		wantReps  string
	}{
		{"range", "3 × 8-10", 3, "8-10"},
		{"ascii separator", "3 x 8-10", 3, "8-10"},
		{"upper separator", "4 X 12", 4, "12"},
		{"no spaces", "3×15", 3, "15"},
		{"extra whitespace", "  3  ×   8-10  ", 3, "8-10"},
		{"per-limb suffix", "3 × 10/leg", 3, "10/leg"},
		{"free text reps", "3 × failure", 3, "failure"},
		{"duration", "1 × 20-30 min", 1, "20-30 min"},
		{"no separator", "just stretch", 1, "just stretch"},
		{"bare number", "15", 1, "15"},
		{"empty", "", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if got.SetCount != tt.wantCount || got.TargetReps != tt.wantReps {
				t.Errorf("Parse(%q) = {%d, %q}, want {%d, %q}",
					tt.in, got.SetCount, got.TargetReps, tt.wantCount, tt.wantReps)
			}
		})
	}
}

// TestRoundTrip verifies parse(format(parse(s))) == parse(s) for well-formed
// notations regardless of separator and whitespace variants.
func TestRoundTrip(t *testing.T) {
	inputs := []string{"3 × 8-10", "3 x 8-10", "3×15", "1 × 20-30 min", "3 × failure", "5 X 5"}
	for _, in := range inputs {
		first := Parse(in)
		second := Parse(Format(first))
		if first != second {
			t.Errorf("round trip of %q: %+v != %+v", in, first, second)
		}
	}
}

func TestIsRepsAdjustable(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"3 × 8-10", true},
		{"3 × 15", true},
		{"3 × 10/leg", true},
		{"3 × failure", false},
		{"1 × max effort", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRepsAdjustable(tt.in); got != tt.want {
			t.Errorf("IsRepsAdjustable(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAdjustSetCount(t *testing.T) {
	tests := []struct {
		in    string
		delta int
		want  string
	}{
		{"3 × 8-10", 1, "4 × 8-10"},
		{"3 × 8-10", -1, "2 × 8-10"},
		{"1 × 15", -1, "1 × 15"}, // floor at 1
		{"3 x failure", 1, "4 × failure"},
		{"failure", 1, "2 × failure"}, // degraded parse still adjustable
	}
	for _, tt := range tests {
		if got := AdjustSetCount(tt.in, tt.delta); got != tt.want {
			t.Errorf("AdjustSetCount(%q, %d) = %q, want %q", tt.in, tt.delta, got, tt.want)
		}
	}
}

// TestAdjustSetCountInverse verifies that +1 then -1 returns to the original
// set count with reps untouched.
func TestAdjustSetCountInverse(t *testing.T) {
	for _, in := range []string{"3 × 8-10", "2 × 10/leg", "5 × failure"} {
		up := AdjustSetCount(in, 1)
		back := Parse(AdjustSetCount(up, -1))
		if orig := Parse(in); back != orig {
			t.Errorf("adjust inverse of %q: got %+v, want %+v", in, back, orig)
		}
	}
}

func TestAdjustReps(t *testing.T) {
	tests := []struct {
		in    string
		delta int
		want  string
	}{
		{"3 × 8-10", 1, "3 × 9-11"},
		{"3 × 8-10", -1, "3 × 7-9"},
		{"3 × 1-2", -1, "3 × 1-1"}, // bounds floor at 1 independently
		{"3 × 15", 1, "3 × 16"},
		{"3 × 1", -1, "3 × 1"},
		{"3 × 10/leg", 1, "3 × 11/leg"},
		{"1 × 20-30 min", 5, "1 × 25-35 min"},
		{"3 × failure", 1, "3 × failure"}, // non-numeric unchanged
	}
	for _, tt := range tests {
		if got := AdjustReps(tt.in, tt.delta); got != tt.want {
			t.Errorf("AdjustReps(%q, %d) = %q, want %q", tt.in, tt.delta, got, tt.want)
		}
	}
}
