package tempo

import (
	"errors"
	"testing"
	"time"
)

func TestPeriodTruncates(t *testing.T) {
	tests := []struct {
		bpm      int
		expected time.Duration
	}{
		{40, 1500 * time.Millisecond},
		{60, time.Second},
		{92, 652 * time.Millisecond},
		{120, 500 * time.Millisecond},
		{208, 288 * time.Millisecond},
	}

	for _, tc := range tests {
		got, err := Period(tc.bpm)
		if err != nil {
			t.Fatalf("Period(%d) returned error: %v", tc.bpm, err)
		}
		if got != tc.expected {
			t.Errorf("Period(%d) = %v, expected %v", tc.bpm, got, tc.expected)
		}
	}
}

func TestPeriodWholeRange(t *testing.T) {
	for bpm := MinBPM; bpm <= MaxBPM; bpm++ {
		ms, err := PeriodMillis(bpm)
		if err != nil {
			t.Fatalf("PeriodMillis(%d) returned error: %v", bpm, err)
		}
		if want := int64(60000 / bpm); ms != want {
			t.Errorf("PeriodMillis(%d) = %d, expected %d", bpm, ms, want)
		}
	}
}

func TestPeriodRejectsNonPositive(t *testing.T) {
	for _, bpm := range []int{0, -5} {
		if _, err := Period(bpm); !errors.Is(err, ErrInvalidTempo) {
			t.Errorf("Period(%d) error = %v, expected ErrInvalidTempo", bpm, err)
		}
	}
}

func TestBoundsValidate(t *testing.T) {
	b := DefaultBounds()
	tests := []struct {
		name  string
		bpm   int
		valid bool
	}{
		{"lower edge", 40, true},
		{"upper edge", 208, true},
		{"middle", 120, true},
		{"below range", 39, false},
		{"above range", 209, false},
		{"zero", 0, false},
		{"negative", -5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := b.Validate(tc.bpm)
			if tc.valid && err != nil {
				t.Errorf("Validate(%d) = %v, expected nil", tc.bpm, err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidTempo) {
				t.Errorf("Validate(%d) = %v, expected ErrInvalidTempo", tc.bpm, err)
			}
		})
	}
}

func TestBoundsValidateAlwaysRejectsZero(t *testing.T) {
	b := Bounds{Min: -10, Max: 10}
	if err := b.Validate(0); !errors.Is(err, ErrInvalidTempo) {
		t.Errorf("Validate(0) with permissive bounds = %v, expected ErrInvalidTempo", err)
	}
}

func TestBoundsClamp(t *testing.T) {
	b := DefaultBounds()
	if got := b.Clamp(10); got != MinBPM {
		t.Errorf("Clamp(10) = %d, expected %d", got, MinBPM)
	}
	if got := b.Clamp(300); got != MaxBPM {
		t.Errorf("Clamp(300) = %d, expected %d", got, MaxBPM)
	}
	if got := b.Clamp(100); got != 100 {
		t.Errorf("Clamp(100) = %d, expected 100", got)
	}
}
