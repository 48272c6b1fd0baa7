package scheduler

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func cand(id string, pool PoolType, topic string, difficulty float64) *Candidate {
	return &Candidate{
		ID:         id,
		Pool:       pool,
		Topic:      topic,
		Difficulty: difficulty,
		HasProfile: true,
		CreatedAt:  testNow.AddDate(0, 0, -10),
	}
}

func TestUrgencyScore(t *testing.T) {
	c := cand("a", PoolDue, "algebra", 1.0)

	// No due date at all.
	if got := urgencyScore(c, testNow); got != 1.0 {
		t.Errorf("no due date: got %v, want 1.0", got)
	}

	// Due today.
	due := testNow.Add(-2 * time.Hour)
	c.Due = &due
	if got := urgencyScore(c, testNow); got != 0.6 {
		t.Errorf("due today: got %v, want 0.6", got)
	}

	// 7 days overdue: 0.6*e ≈ 1.63, capped at 1.0.
	due = testNow.AddDate(0, 0, -7)
	c.Due = &due
	if got := urgencyScore(c, testNow); got != 1.0 {
		t.Errorf("7 days overdue: got %v, want capped 1.0", got)
	}

	// 2 days overdue: 0.6*exp(2/7), below the cap.
	due = testNow.AddDate(0, 0, -2)
	c.Due = &due
	want := 0.6 * math.Exp(2.0/7.0)
	if got := urgencyScore(c, testNow); math.Abs(got-want) > 1e-9 {
		t.Errorf("2 days overdue: got %v, want %v", got, want)
	}

	// Not yet due: decays below 0.6.
	due = testNow.AddDate(0, 0, 5)
	c.Due = &due
	if got := urgencyScore(c, testNow); got >= 0.6 {
		t.Errorf("future due: got %v, want < 0.6", got)
	}
}

func TestDiversityScore(t *testing.T) {
	c := cand("a", PoolInterleave, "algebra", 1.0)

	tests := []struct {
		name   string
		recent []string
		want   float64
	}{
		{"no history", nil, 0.7},
		{"no repeats", []string{"geometry", "calculus"}, 0.7},
		{"one repeat", []string{"algebra", "geometry"}, 0.7 * 0.8},
		{"two repeats", []string{"algebra", "algebra"}, 0.7 * 0.6},
		{"three repeats", []string{"algebra", "algebra", "algebra"}, 0.7 * 0.3},
		{"four repeats", []string{"algebra", "algebra", "algebra", "algebra"}, 0.7 * 0.3},
	}
	for _, tt := range tests {
		if got := diversityScore(c, tt.recent); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}

	// Missing profile scores a flat 0.5 regardless of history.
	c.HasProfile = false
	if got := diversityScore(c, nil); got != 0.5 {
		t.Errorf("no profile: got %v, want 0.5", got)
	}
}

func TestDifficultyScore(t *testing.T) {
	// On-target item, medium tier: base 1.0 * 0.8.
	c := cand("a", PoolDue, "algebra", 0.75)
	if got := difficultyScore(c, TierMedium); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("on target medium: got %v, want 0.8", got)
	}

	// Hard item on high tier gets the 1.2 boost.
	c.Difficulty = 1.25
	high := difficultyScore(c, TierHigh)
	med := difficultyScore(c, TierMedium)
	if high <= med {
		t.Errorf("high tier should reward hard items: high %v, medium %v", high, med)
	}

	// Easy item on low tier gets the boost too.
	c.Difficulty = 0.5
	low := difficultyScore(c, TierLow)
	med = difficultyScore(c, TierMedium)
	if low <= med {
		t.Errorf("low tier should reward easy items: low %v, medium %v", low, med)
	}

	// Far off target bottoms out at zero.
	c.Difficulty = 3.0
	if got := difficultyScore(c, TierMedium); got != 0 {
		t.Errorf("far off target: got %v, want 0", got)
	}
}

func TestRecencyScore(t *testing.T) {
	// New pool: fresh cards score near 1, old ones decay to 0.
	c := cand("a", PoolNew, "algebra", 1.0)
	c.CreatedAt = testNow
	if got := recencyScore(c, testNow); got != 1.0 {
		t.Errorf("created now: got %v, want 1.0", got)
	}
	c.CreatedAt = testNow.AddDate(0, 0, -15)
	if got := recencyScore(c, testNow); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("15 days old: got %v, want 0.5", got)
	}
	c.CreatedAt = testNow.AddDate(0, 0, -45)
	if got := recencyScore(c, testNow); got != 0 {
		t.Errorf("45 days old: got %v, want 0", got)
	}

	// Due pool: never reviewed is neutral.
	c = cand("b", PoolDue, "algebra", 1.0)
	if got := recencyScore(c, testNow); got != 0.5 {
		t.Errorf("never reviewed: got %v, want 0.5", got)
	}

	// Long-unreviewed cards ramp to 1.0 over 30 days.
	last := testNow.AddDate(0, 0, -15)
	c.LastReviewed = &last
	if got := recencyScore(c, testNow); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("15 days since review: got %v, want 0.5", got)
	}
	last = testNow.AddDate(0, 0, -60)
	c.LastReviewed = &last
	if got := recencyScore(c, testNow); got != 1.0 {
		t.Errorf("60 days since review: got %v, want 1.0", got)
	}
}

func TestScore_ClampedAndBoosted(t *testing.T) {
	scorer := NewScorer()
	in := ScoreInputs{Now: testNow, Tier: TierMedium, Beta: 1.0}

	// Heavily overdue due-pool card: urgency saturates, score stays in [0,1].
	c := cand("a", PoolDue, "algebra", 0.75)
	due := testNow.AddDate(0, 0, -30)
	c.Due = &due
	got := scorer.Score(c, in)
	if got < 0 || got > 1 {
		t.Errorf("score out of range: %v", got)
	}

	// The due-pool urgency boost should outrank an identical interleave card.
	ci := cand("b", PoolInterleave, "algebra", 0.75)
	ci.Due = &due
	if si := scorer.Score(ci, in); si >= got {
		t.Errorf("due boost missing: due %v, interleave %v", got, si)
	}
}

func TestScore_BetaSharpensDiversity(t *testing.T) {
	scorer := NewScorer()
	c := cand("a", PoolInterleave, "algebra", 0.75)
	last := testNow.AddDate(0, 0, -10)
	c.LastReviewed = &last

	flat := scorer.Score(c, ScoreInputs{Now: testNow, Tier: TierMedium, Beta: 1.0})
	sharp := scorer.Score(c, ScoreInputs{Now: testNow, Tier: TierMedium, Beta: 1.2})
	// Diversity sub-score is below 1, so a larger exponent shrinks it.
	if sharp >= flat {
		t.Errorf("beta 1.2 should lower sub-unit diversity: flat %v, sharp %v", flat, sharp)
	}
}
