// ABOUTME: Tests for frequency/timing/quantity ordinal encoding
// ABOUTME: Pins the lookup table and both documented fallback behaviors
package features

import "testing"

func TestEncodeFrequency_Table(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"1-3_day", 2},
		{"4-6_day", 4},
		{"1-3_week", 1},
		{"4-6_week", 3},
		{"with_meals", 1},
		{"between_meals", 2},
		{"before_bedtime", 3},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := EncodeFrequency(tt.value); got != tt.want {
				t.Errorf("EncodeFrequency(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestEncodeFrequency_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		// Empty answers mean "not answered" and encode to 0.
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},

		// Digitless garbage defaults to 1, not 0.
		{"never", "never", 1},
		{"never uppercase", "NEVER", 1},
		{"never padded", " never ", 1},
		{"unknown garbage", "unknown_garbage", 1},
		{"both", "both", 1},

		// Digit extraction averages embedded numbers and buckets into 0-4.
		{"zero", "0", 0},
		{"less than two", "<2", 1},
		{"two to four", "2-4", 2},
		{"four to six glasses", "4-6", 2},
		{"more than six", ">6", 3},
		{"two-three times", "2-3 times", 2},
		{"single high count", "10 times", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeFrequency(tt.value); got != tt.want {
				t.Errorf("EncodeFrequency(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestEncodeFrequency_SpacesNormalized(t *testing.T) {
	// Form answers sometimes arrive with spaces instead of underscores.
	if got := EncodeFrequency("with meals"); got != 1 {
		t.Errorf("EncodeFrequency(\"with meals\") = %v, want 1", got)
	}
	if got := EncodeFrequency("between meals"); got != 2 {
		t.Errorf("EncodeFrequency(\"between meals\") = %v, want 2", got)
	}
}
