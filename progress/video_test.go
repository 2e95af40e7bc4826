package progress

import "testing"

func TestWatched(t *testing.T) {
	cases := []struct {
		name        string
		currentTime float64
		duration    float64
		want        bool
	}{
		{"below threshold", 80, 100, false},
		{"at threshold", 90, 100, true},
		{"above threshold", 95, 100, true},
		{"just under", 89.9, 100, false},
		{"zero duration", 10, 0, false},
		{"negative duration", 10, -5, false},
		{"short video", 54, 60, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Watched(tc.currentTime, tc.duration); got != tc.want {
				t.Fatalf("Watched(%v, %v) = %v, want %v", tc.currentTime, tc.duration, got, tc.want)
			}
		})
	}
}
