package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/studykit/interleave/internal/model"
)

// newCardWindowDays bounds how far back the new pool reaches.
const newCardWindowDays = 30

// CardRepo provides flashcard access, including the three pre-filtered
// candidate pools the scheduler consumes.
type CardRepo interface {
	// DuePool returns cards whose next review has passed, most overdue first.
	DuePool(ctx context.Context, userID string, now time.Time, limit int) ([]model.Flashcard, error)

	// InterleavePool returns stable, not-yet-due cards (reviewed at least
	// twice) usable for topic mixing.
	InterleavePool(ctx context.Context, userID string, now time.Time, limit int) ([]model.Flashcard, error)

	// NewPool returns recently created, barely-reviewed cards.
	NewPool(ctx context.Context, userID string, now time.Time, limit int) ([]model.Flashcard, error)

	// ByPublicID looks up one card owned by the user.
	ByPublicID(ctx context.Context, userID, publicID string) (*model.Flashcard, error)

	// Save persists review-state changes on a card.
	Save(ctx context.Context, card *model.Flashcard) error
}

// CardRepo returns a CardRepo backed by this store.
func (s *Store) CardRepo() CardRepo {
	return &cardRepo{store: s}
}

type cardRepo struct {
	store *Store
}

func (r *cardRepo) DuePool(ctx context.Context, userID string, now time.Time, limit int) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.poolQuery(ctx, userID, limit).
		Where("next_review IS NOT NULL AND next_review <= ?", now).
		Order("next_review ASC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("due pool: %w", err)
	}
	return cards, nil
}

func (r *cardRepo) InterleavePool(ctx context.Context, userID string, now time.Time, limit int) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.poolQuery(ctx, userID, limit).
		Where("next_review IS NOT NULL AND next_review > ?", now).
		Where("total_reviews >= ?", 2).
		Order("last_reviewed ASC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("interleave pool: %w", err)
	}
	return cards, nil
}

func (r *cardRepo) NewPool(ctx context.Context, userID string, now time.Time, limit int) ([]model.Flashcard, error) {
	cutoff := now.AddDate(0, 0, -newCardWindowDays)
	var cards []model.Flashcard
	err := r.poolQuery(ctx, userID, limit).
		Where("total_reviews <= ?", 1).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	return cards, nil
}

func (r *cardRepo) ByPublicID(ctx context.Context, userID, publicID string) (*model.Flashcard, error) {
	var card model.Flashcard
	err := r.store.db.WithContext(ctx).
		Preload("Profile").
		Preload("Profile.Topic").
		Preload("Profile.Principle").
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&card).Error
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", publicID, err)
	}
	return &card, nil
}

func (r *cardRepo) Save(ctx context.Context, card *model.Flashcard) error {
	if err := r.store.db.WithContext(ctx).Save(card).Error; err != nil {
		return fmt.Errorf("save card %s: %w", card.PublicID, err)
	}
	return nil
}

// poolQuery applies the filters every pool shares.
func (r *cardRepo) poolQuery(ctx context.Context, userID string, limit int) *gorm.DB {
	q := r.store.db.WithContext(ctx).
		Model(&model.Flashcard{}).
		Preload("Profile").
		Preload("Profile.Topic").
		Preload("Profile.Principle").
		Where("user_id = ?", userID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
