package scheduler

import (
	"math"
	"time"
)

// ScoreWeights control how the four sub-scores combine into one scalar.
type ScoreWeights struct {
	Urgency    float64
	Diversity  float64
	Difficulty float64
	Recency    float64
}

// DefaultScoreWeights is the 0.4/0.3/0.2/0.1 combination.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Urgency: 0.4, Diversity: 0.3, Difficulty: 0.2, Recency: 0.1}
}

// ScoreInputs carries the per-session context every score shares.
type ScoreInputs struct {
	Now          time.Time
	Tier         Tier
	Beta         float64  // diversity exponent from the dial
	RecentTopics []string // user's recent review topics, newest first
}

// Pool-specific boosts applied to one sub-score before the weighted sum.
const (
	dueUrgencyBoost          = 1.3
	interleaveDiversityBoost = 1.2
	newRecencyBoost          = 1.2
)

// difficultyTarget is the center of the difficulty-alignment ramp.
const difficultyTarget = 0.75

// DefaultScorer combines urgency, diversity, difficulty alignment and
// recency with pool-specific boosts.
type DefaultScorer struct {
	weights ScoreWeights
}

// NewScorer returns a scorer with the default sub-score weights.
func NewScorer() *DefaultScorer {
	return &DefaultScorer{weights: DefaultScoreWeights()}
}

// NewScorerWithWeights returns a scorer with custom sub-score weights.
func NewScorerWithWeights(w ScoreWeights) *DefaultScorer {
	return &DefaultScorer{weights: w}
}

// Score computes the candidate's combined score in [0,1].
func (s *DefaultScorer) Score(c *Candidate, in ScoreInputs) float64 {
	urgency := urgencyScore(c, in.Now)
	diversity := diversityScore(c, in.RecentTopics)
	difficulty := difficultyScore(c, in.Tier)
	recency := recencyScore(c, in.Now)

	if in.Beta > 0 && in.Beta != 1.0 {
		diversity = math.Pow(diversity, in.Beta)
	}

	switch c.Pool {
	case PoolDue:
		urgency *= dueUrgencyBoost
	case PoolInterleave:
		diversity *= interleaveDiversityBoost
	case PoolNew:
		recency *= newRecencyBoost
	}

	score := s.weights.Urgency*urgency +
		s.weights.Diversity*diversity +
		s.weights.Difficulty*difficulty +
		s.weights.Recency*recency
	return clamp01(score)
}

// urgencyScore escalates with days overdue: 1.0 with no due date, 0.6 when
// due today, otherwise 0.6*exp(days_overdue/7) capped at 1.0. Not-yet-due
// items (negative overdue) decay below 0.6.
func urgencyScore(c *Candidate, now time.Time) float64 {
	if c.Due == nil {
		return 1.0
	}
	if sameDay(*c.Due, now) {
		return 0.6
	}
	daysOverdue := now.Sub(*c.Due).Hours() / 24.0
	return clamp01(0.6 * math.Exp(daysOverdue/7.0))
}

// diversityScore starts at a 0.7 baseline and decays multiplicatively with
// the number of recent reviews of the same topic. Cards without a profile
// score a flat 0.5.
func diversityScore(c *Candidate, recentTopics []string) float64 {
	if !c.HasProfile {
		return 0.5
	}
	repeats := 0
	for _, topic := range recentTopics {
		if topic == c.Topic {
			repeats++
		}
	}
	base := 0.7
	switch {
	case repeats == 0:
		return base
	case repeats == 1:
		return base * 0.8
	case repeats == 2:
		return base * 0.6
	default:
		return base * 0.3
	}
}

// difficultyScore rewards items near the target, with harder tiers boosting
// items above target and easier tiers boosting items below it.
func difficultyScore(c *Candidate, tier Tier) float64 {
	base := math.Max(0, 1-math.Abs(c.Difficulty-difficultyTarget))
	aligned := (tier == TierHigh && c.Difficulty > difficultyTarget) ||
		(tier == TierLow && c.Difficulty < difficultyTarget)
	if aligned {
		base *= 1.2
	} else {
		base *= 0.8
	}
	return clamp01(base)
}

// recencyScore favors freshly created cards for the new pool and
// long-unreviewed cards for the due/interleave pools.
func recencyScore(c *Candidate, now time.Time) float64 {
	const windowDays = 30.0
	if c.Pool == PoolNew {
		age := now.Sub(c.CreatedAt).Hours() / 24.0
		return clamp01(1 - age/windowDays)
	}
	if c.LastReviewed == nil {
		return 0.5
	}
	since := now.Sub(*c.LastReviewed).Hours() / 24.0
	return clamp01(since / windowDays)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
