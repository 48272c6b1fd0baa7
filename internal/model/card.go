// Package model defines the persistent entities the scheduler reads:
// flashcards, their pedagogical profiles, the topic/principle graph, and
// per-user session configuration.
package model

import (
	"time"

	"gorm.io/gorm"
)

// LearningState tracks where a card sits in its review lifecycle.
type LearningState string

const (
	StateNew      LearningState = "new"
	StateLearning LearningState = "learning"
	StateReview   LearningState = "review"
)

// Flashcard is an individual card. The scheduler treats it as read-only;
// only the review command mutates the scheduling fields.
type Flashcard struct {
	gorm.Model
	PublicID string `gorm:"uniqueIndex;size:21;not null"`
	UserID   string `gorm:"index;not null;size:64"`

	Front string `gorm:"not null;size:1000"`
	Back  string `gorm:"not null;size:2000"`

	SetID uint          `gorm:"index"`
	Set   *FlashcardSet `gorm:"foreignKey:SetID" json:"-"`

	State          LearningState `gorm:"size:16;default:new"`
	NextReview     *time.Time    `gorm:"index"`
	TotalReviews   int           `gorm:"default:0"`
	CorrectReviews int           `gorm:"default:0"`
	LastReviewed   *time.Time

	// SM-2 state, maintained by the review command.
	Ease         float64 `gorm:"default:2.5"`
	IntervalDays float64 `gorm:"default:0"`
	Reps         int     `gorm:"default:0"`
	Box          int     `gorm:"default:0"` // Leitner fallback

	Profile *FlashcardProfile `gorm:"foreignKey:FlashcardID"`
}

// FlashcardSet groups cards. Purely organizational.
type FlashcardSet struct {
	gorm.Model
	PublicID string `gorm:"uniqueIndex;size:21;not null"`
	UserID   string `gorm:"index;not null;size:64"`
	Name     string `gorm:"not null;size:200"`
}

// FlashcardProfile carries the pedagogical metadata scoring needs. A card
// may have none; the scheduler substitutes neutral defaults.
type FlashcardProfile struct {
	gorm.Model
	FlashcardID uint `gorm:"uniqueIndex;not null"`

	TopicID     *uint
	Topic       *Topic `gorm:"foreignKey:TopicID"`
	PrincipleID *uint
	Principle   *Principle `gorm:"foreignKey:PrincipleID"`

	// Difficulty estimate, roughly 0.5 to 3.0.
	Difficulty float64 `gorm:"default:1.5"`
}
