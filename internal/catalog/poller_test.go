package catalog

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	base := time.Minute

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, time.Minute},
		{"negative failures", -1, time.Minute},
		{"one failure", 1, 2 * time.Minute},
		{"two failures", 2, 4 * time.Minute},
		{"three failures", 3, 8 * time.Minute},
		{"four failures capped", 4, maxBackoff},
		{"many failures capped", 10, maxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	for failures := 0; failures <= 30; failures++ {
		got := calculateBackoff(failures, time.Minute)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d) = %v, exceeds maxBackoff %v", failures, got, maxBackoff)
		}
	}
}
