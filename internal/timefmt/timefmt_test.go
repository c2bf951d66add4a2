package timefmt

import "testing"

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{65, "1:05"},
		{599, "9:59"},
		{600, "10:00"},
		{59.9, "0:59"},  // floored, never rounded
		{3725, "62:05"}, // no hours component
		{-3, "0:00"},
	}

	for _, tt := range tests {
		if got := Seconds(tt.in); got != tt.want {
			t.Errorf("Seconds(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
