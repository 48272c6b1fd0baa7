package model

import (
	"time"

	"gorm.io/gorm"
)

// SessionConfig is the per-user scheduler configuration. Weights are stored
// as entered; the difficulty dial renormalizes them before use.
type SessionConfig struct {
	gorm.Model
	UserID string `gorm:"uniqueIndex;not null;size:64"`

	SessionSize         int     `gorm:"default:10"`
	Difficulty          string  `gorm:"size:16;default:medium"`
	WDue                float64 `gorm:"default:0.60"`
	WInterleave         float64 `gorm:"default:0.25"`
	WNew                float64 `gorm:"default:0.15"`
	MaxSameTopicStreak  int     `gorm:"default:2"`
	RequireContrastPair bool    `gorm:"default:true"`
}

// SessionEvent is one append-only record of a generated session, kept for
// observability: fill modes and relaxation counts over time show how thin
// the candidate pools are running.
type SessionEvent struct {
	gorm.Model
	EventID   string `gorm:"uniqueIndex;size:36;not null"`
	UserID    string `gorm:"index;not null;size:64"`
	SessionID string `gorm:"index;size:64;not null"`

	RequestedSize      int
	ActualSize         int
	FillMode           string `gorm:"size:16"`
	RelaxedTopicStreak int
	RelaxedHardRun     int
	FallbackPicks      int
	QualityScore       float64
	Seed               string `gorm:"size:128"`
}

// ReviewEvent is one append-only record of a graded review. The topic is
// denormalized so the recent-topic history query needs no joins.
type ReviewEvent struct {
	gorm.Model
	EventID     string `gorm:"uniqueIndex;size:36;not null"`
	UserID      string `gorm:"index:idx_review_user_time;not null;size:64"`
	FlashcardID uint   `gorm:"index;not null"`

	Topic      string `gorm:"size:100"`
	Quality    int
	Correct    bool
	ReviewedAt time.Time `gorm:"index:idx_review_user_time"`
}
