package model

import (
	"testing"
	"time"
)

func TestScreeningStartsAt(t *testing.T) {
	s := Screening{Date: "2026-07-10", Time: "20:30", Room: "A"}
	at, err := s.StartsAt()
	if err != nil {
		t.Fatalf("StartsAt() error: %v", err)
	}
	want := time.Date(2026, 7, 10, 20, 30, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", at, want)
	}

	bad := Screening{Date: "not-a-date", Time: "20:30"}
	if _, err := bad.StartsAt(); err == nil {
		t.Error("StartsAt() accepted a malformed date")
	}
}

func TestScreeningIsPast(t *testing.T) {
	now := time.Date(2026, 7, 10, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		s    Screening
		want bool
	}{
		{"earlier same day", Screening{Date: "2026-07-10", Time: "19:59"}, true},
		{"exact instant", Screening{Date: "2026-07-10", Time: "20:00"}, false},
		{"later same day", Screening{Date: "2026-07-10", Time: "20:01"}, false},
		{"previous day", Screening{Date: "2026-07-09", Time: "23:00"}, true},
		{"next day", Screening{Date: "2026-07-11", Time: "09:00"}, false},
		{"malformed date treated as upcoming", Screening{Date: "bogus", Time: "20:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsPast(now); got != tt.want {
				t.Errorf("IsPast(%v) = %v, want %v", now, got, tt.want)
			}
		})
	}
}

func TestValidScore(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{100, true},
		{50.5, true},
		{-0.01, false},
		{100.01, false},
	}
	for _, tt := range tests {
		if got := ValidScore(tt.v); got != tt.want {
			t.Errorf("ValidScore(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
