// Package srs applies spaced-repetition review updates. The scheduler never
// calls into this package; it only reads the card state these updates leave
// behind.
package srs

import (
	"math"
	"time"
)

// Quality grades a review answer on the classic 0-5 scale.
// 0-2 are failures, 3-5 are passes of increasing confidence.
type Quality int

const (
	QualityBlackout  Quality = 0
	QualityWrong     Quality = 1
	QualityAlmost    Quality = 2
	QualityHard      Quality = 3
	QualityGood      Quality = 4
	QualityPerfect   Quality = 5
	minPassing               = QualityHard
)

// IsPassing reports whether the grade counts as a successful recall.
func (q Quality) IsPassing() bool { return q >= minPassing }

// State is the SM-2 state carried on a card.
type State struct {
	Ease         float64 // easiness factor, floored at 1.3
	IntervalDays float64
	Reps         int // consecutive successful reviews
}

// NewState returns the state for a card that has never been reviewed.
func NewState() State {
	return State{Ease: 2.5}
}

const (
	minEase            = 1.3
	firstIntervalDays  = 1.0
	secondIntervalDays = 6.0
)

// Review applies one SM-2 update and returns the new state plus the next
// due time. The multiplier (from the difficulty dial) scales the computed
// interval, shortening reviews on the low tier and stretching them on high.
func Review(s State, q Quality, now time.Time, multiplier float64) (State, time.Time) {
	if s.Ease < minEase {
		s.Ease = minEase
	}
	if multiplier <= 0 {
		multiplier = 1.0
	}

	if !q.IsPassing() {
		s.Reps = 0
		s.IntervalDays = firstIntervalDays
	} else {
		switch s.Reps {
		case 0:
			s.IntervalDays = firstIntervalDays
		case 1:
			s.IntervalDays = secondIntervalDays
		default:
			s.IntervalDays = math.Round(s.IntervalDays * s.Ease)
		}
		s.Reps++
	}

	// Ease update runs on every review, pass or fail.
	grade := float64(q)
	s.Ease += 0.1 - (5-grade)*(0.08+(5-grade)*0.02)
	if s.Ease < minEase {
		s.Ease = minEase
	}

	if s.IntervalDays < firstIntervalDays {
		s.IntervalDays = firstIntervalDays
	}
	due := now.Add(time.Duration(s.IntervalDays * multiplier * 24 * float64(time.Hour)))
	return s, due
}
