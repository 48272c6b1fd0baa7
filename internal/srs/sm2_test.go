package srs

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestReview_FirstTwoIntervals(t *testing.T) {
	s := NewState()

	s, due := Review(s, QualityGood, now, 1.0)
	if s.IntervalDays != 1 {
		t.Errorf("first pass interval = %v, want 1", s.IntervalDays)
	}
	if due.Before(now.Add(23 * time.Hour)) {
		t.Errorf("due %v too soon", due)
	}

	s, _ = Review(s, QualityGood, now, 1.0)
	if s.IntervalDays != 6 {
		t.Errorf("second pass interval = %v, want 6", s.IntervalDays)
	}
	if s.Reps != 2 {
		t.Errorf("Reps = %d, want 2", s.Reps)
	}
}

func TestReview_IntervalGrowsWithEase(t *testing.T) {
	s := NewState()
	for i := 0; i < 5; i++ {
		prev := s.IntervalDays
		s, _ = Review(s, QualityPerfect, now, 1.0)
		if s.IntervalDays < prev {
			t.Fatalf("interval shrank on pass: %v -> %v", prev, s.IntervalDays)
		}
	}
	if s.IntervalDays < 6 {
		t.Errorf("interval after 5 perfect reviews = %v, want expanding", s.IntervalDays)
	}
}

func TestReview_FailureResets(t *testing.T) {
	s := NewState()
	s, _ = Review(s, QualityGood, now, 1.0)
	s, _ = Review(s, QualityGood, now, 1.0)
	s, _ = Review(s, QualityWrong, now, 1.0)

	if s.Reps != 0 {
		t.Errorf("Reps = %d, want 0 after failure", s.Reps)
	}
	if s.IntervalDays != 1 {
		t.Errorf("interval = %v, want reset to 1", s.IntervalDays)
	}
}

func TestReview_EaseFloored(t *testing.T) {
	s := NewState()
	for i := 0; i < 20; i++ {
		s, _ = Review(s, QualityBlackout, now, 1.0)
	}
	if s.Ease < 1.3 {
		t.Errorf("Ease = %v, below the 1.3 floor", s.Ease)
	}
}

func TestReview_MultiplierScalesDue(t *testing.T) {
	s := NewState()
	s, _ = Review(s, QualityGood, now, 1.0)

	_, dueLow := Review(s, QualityGood, now, 0.8)
	_, dueHigh := Review(s, QualityGood, now, 1.2)
	if !dueLow.Before(dueHigh) {
		t.Errorf("low-tier due %v should precede high-tier due %v", dueLow, dueHigh)
	}
}

func TestLeitnerReview(t *testing.T) {
	box, due := LeitnerReview(0, true, now, 1.0)
	if box != 1 {
		t.Errorf("box = %d, want 1", box)
	}
	if want := now.AddDate(0, 0, 3); !due.Equal(want) {
		t.Errorf("due = %v, want %v", due, want)
	}

	box, _ = LeitnerReview(MaxBox, true, now, 1.0)
	if box != MaxBox {
		t.Errorf("box = %d, must cap at %d", box, MaxBox)
	}

	box, due = LeitnerReview(4, false, now, 1.0)
	if box != 0 {
		t.Errorf("box = %d, want reset to 0", box)
	}
	if want := now.AddDate(0, 0, 1); !due.Equal(want) {
		t.Errorf("due after failure = %v, want %v", due, want)
	}
}
