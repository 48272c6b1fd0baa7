package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/interleave/internal/model"
	"github.com/studykit/interleave/internal/scheduler"
)

// EventRepo provides append access to the domain event log and the history
// queries built on it.
type EventRepo interface {
	// AppendSessionEvent records one generated session.
	AppendSessionEvent(ctx context.Context, res *scheduler.Result, seed string) error

	// AppendReviewEvent records one graded review.
	AppendReviewEvent(ctx context.Context, userID string, cardID uint, topic string, quality int, correct bool, at time.Time) error

	// RecentTopics returns up to n topics from the user's most recent
	// reviews, newest first.
	RecentTopics(ctx context.Context, userID string, n int) ([]string, error)

	// RecentSessions returns the user's latest session events, newest first.
	RecentSessions(ctx context.Context, userID string, limit int) ([]model.SessionEvent, error)
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{store: s}
}

type eventRepo struct {
	store *Store
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, res *scheduler.Result, seed string) error {
	ev := model.SessionEvent{
		EventID:            uuid.NewString(),
		UserID:             res.UserID,
		SessionID:          res.SessionID,
		RequestedSize:      res.RequestedSize,
		ActualSize:         res.ActualSize,
		FillMode:           string(res.FillMode),
		RelaxedTopicStreak: res.Relaxations.TopicStreak,
		RelaxedHardRun:     res.Relaxations.HardRun,
		FallbackPicks:      res.Relaxations.Fallback,
		QualityScore:       res.Quality.Overall,
		Seed:               seed,
	}
	if err := r.store.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendReviewEvent(ctx context.Context, userID string, cardID uint, topic string, quality int, correct bool, at time.Time) error {
	ev := model.ReviewEvent{
		EventID:     uuid.NewString(),
		UserID:      userID,
		FlashcardID: cardID,
		Topic:       topic,
		Quality:     quality,
		Correct:     correct,
		ReviewedAt:  at,
	}
	if err := r.store.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentTopics(ctx context.Context, userID string, n int) ([]string, error) {
	var topics []string
	err := r.store.db.WithContext(ctx).
		Model(&model.ReviewEvent{}).
		Where("user_id = ? AND topic <> ''", userID).
		Order("reviewed_at DESC").
		Limit(n).
		Pluck("topic", &topics).Error
	if err != nil {
		return nil, fmt.Errorf("recent topics: %w", err)
	}
	return topics, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, userID string, limit int) ([]model.SessionEvent, error) {
	var events []model.SessionEvent
	err := r.store.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	return events, nil
}
