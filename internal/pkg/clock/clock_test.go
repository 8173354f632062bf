package clock

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 10, 15, 23, 59, 1, 5, time.FixedZone("UTC+2", 2*3600))
	got := StartOfDay(in)
	want := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	if !SameDay(a, a.Add(23*time.Hour)) {
		t.Fatal("expected same day")
	}
	if SameDay(a, a.Add(24*time.Hour)) {
		t.Fatal("expected different days")
	}
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	c.Advance(36 * time.Hour)

	if got := c.Since(start); got != 36*time.Hour {
		t.Fatalf("expected 36h, got %v", got)
	}
}
