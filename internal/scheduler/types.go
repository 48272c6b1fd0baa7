// Package scheduler assembles an ordered study session from three candidate
// pools (due, interleave, new), balancing spaced-repetition urgency against
// topic interleaving and controlled introduction of new material.
//
// The package is a pure computation over data already fetched by a storage
// collaborator: it performs no I/O and is safe to call concurrently for
// different users.
package scheduler

import (
	"context"
	"time"
)

// PoolType identifies which candidate pool an item was drawn from.
type PoolType string

const (
	PoolDue        PoolType = "due"
	PoolInterleave PoolType = "interleave"
	PoolNew        PoolType = "new"
)

// AllPools returns the pool types in quota-assignment order.
func AllPools() []PoolType {
	return []PoolType{PoolDue, PoolInterleave, PoolNew}
}

// Tier is a user-selected session difficulty tier.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

const (
	// UnknownTopic is substituted when a candidate has no profile.
	UnknownTopic = "Unknown"
	// DefaultDifficulty is the mid-range difficulty estimate substituted
	// when a candidate has no profile.
	DefaultDifficulty = 1.5
)

// Candidate is a flashcard as seen by the scheduler: identity plus the
// profile fields scoring needs. Missing profiles are resolved at the
// pool-fetch boundary, so Topic and Difficulty are always populated here.
type Candidate struct {
	ID           string // stable flashcard identifier
	Pool         PoolType
	Topic        string
	Principle    string // empty if the card has no principle
	Difficulty   float64
	HasProfile   bool
	Due          *time.Time
	CreatedAt    time.Time
	LastReviewed *time.Time
	TotalReviews int

	score float64
	tie   uint64
}

// Score returns the candidate's combined score, set during scoring.
func (c *Candidate) Score() float64 { return c.score }

// SessionItem is one slot of the assembled session.
type SessionItem struct {
	CardID    string   `json:"card_id"`
	Pool      PoolType `json:"pool"`
	Topic     string   `json:"topic"`
	Principle string   `json:"principle,omitempty"`
	Position  int      `json:"position"`
}

// Config is the per-user session configuration the scheduler consumes.
// Weights are renormalized before use; all-zero weights fall back to the
// 0.60/0.25/0.15 defaults.
type Config struct {
	Size                int
	Difficulty          Tier
	WDue                float64
	WInterleave         float64
	WNew                float64
	MaxSameTopicStreak  int
	RequireContrastPair bool
}

// DefaultConfig returns the configuration used when a user has none stored.
func DefaultConfig() Config {
	return Config{
		Size:                10,
		Difficulty:          TierMedium,
		WDue:                0.60,
		WInterleave:         0.25,
		WNew:                0.15,
		MaxSameTopicStreak:  2,
		RequireContrastPair: true,
	}
}

// FillMode classifies how completely a session met its requested size.
type FillMode string

const (
	FillStrict    FillMode = "strict"    // requested size fully met
	FillRelaxed   FillMode = "relaxed"   // at least 80% met
	FillExhausted FillMode = "exhausted" // pools ran dry before that
)

// RelaxationCounts records how many picks required loosening a constraint,
// by constraint kind.
type RelaxationCounts struct {
	TopicStreak int `json:"topic_streak"`
	HardRun     int `json:"hard_run"`
	Fallback    int `json:"fallback"`
}

// Total returns the number of picks that needed any relaxation.
func (r RelaxationCounts) Total() int {
	return r.TopicStreak + r.HardRun + r.Fallback
}

// PoolShare reports one pool's contribution to the final session.
type PoolShare struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Result is the assembled session returned to the caller.
type Result struct {
	SessionID     string                 `json:"session_id"`
	UserID        string                 `json:"user_id"`
	Items         []SessionItem          `json:"items"`
	RequestedSize int                    `json:"requested_size"`
	ActualSize    int                    `json:"actual_size"`
	FillMode      FillMode               `json:"fill_mode"`
	PoolMix       map[PoolType]PoolShare `json:"pool_mix"`
	PoolFetched   map[PoolType]int       `json:"pool_fetched"`
	Relaxations   RelaxationCounts       `json:"relaxations"`
	Dial          DialParams             `json:"dial"`
	Quality       QualityReport          `json:"quality"`
	GeneratedAt   time.Time              `json:"generated_at"`
}

// ContrastGraph answers whether two principles are recorded as conceptually
// contrasting. Implementations treat the relation as symmetric: an edge in
// either direction counts.
type ContrastGraph interface {
	Contrasts(a, b string) bool
}

// PoolSource supplies the three pre-filtered candidate pools and the user's
// recent topic history. Implemented by the storage layer.
type PoolSource interface {
	// Pools returns due, interleave-eligible and new candidates for the
	// user. Pool size caps (e.g. 3x the target size) are the source's
	// responsibility.
	Pools(ctx context.Context, userID string, targetSize int) (due, interleave, fresh []*Candidate, err error)

	// RecentTopics returns up to n topic names from the user's most
	// recent reviews, newest first.
	RecentTopics(ctx context.Context, userID string, n int) ([]string, error)
}

// Scorer computes a combined score in [0,1] for a candidate.
type Scorer interface {
	Score(c *Candidate, in ScoreInputs) float64
}

// Solver composes a session position by position from scored pools.
type Solver interface {
	Solve(pools map[PoolType][]*Candidate, quotas map[PoolType]int, params SolveParams) SolveResult
}

// Validator scores a finished session and can reorder it to satisfy the
// contrast-pair requirement.
type Validator interface {
	Validate(items []SessionItem, requested int, requireContrast bool) QualityReport
	EnforceContrast(items []SessionItem) ([]SessionItem, bool)
}
