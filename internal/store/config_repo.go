package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/studykit/interleave/internal/model"
	"github.com/studykit/interleave/internal/scheduler"
)

// ConfigRepo manages per-user session configuration.
type ConfigRepo interface {
	// ForUser returns the user's stored configuration, or the defaults if
	// none exists yet.
	ForUser(ctx context.Context, userID string) (model.SessionConfig, error)

	// Save upserts the user's configuration.
	Save(ctx context.Context, cfg *model.SessionConfig) error
}

// ConfigRepo returns a ConfigRepo backed by this store.
func (s *Store) ConfigRepo() ConfigRepo {
	return &configRepo{store: s}
}

type configRepo struct {
	store *Store
}

func (r *configRepo) ForUser(ctx context.Context, userID string) (model.SessionConfig, error) {
	var cfg model.SessionConfig
	err := r.store.db.WithContext(ctx).Where("user_id = ?", userID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSessionConfig(userID), nil
	}
	if err != nil {
		return model.SessionConfig{}, fmt.Errorf("load config for %s: %w", userID, err)
	}
	return cfg, nil
}

func (r *configRepo) Save(ctx context.Context, cfg *model.SessionConfig) error {
	if err := r.store.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return fmt.Errorf("save config for %s: %w", cfg.UserID, err)
	}
	return nil
}

func defaultSessionConfig(userID string) model.SessionConfig {
	d := scheduler.DefaultConfig()
	return model.SessionConfig{
		UserID:              userID,
		SessionSize:         d.Size,
		Difficulty:          string(d.Difficulty),
		WDue:                d.WDue,
		WInterleave:         d.WInterleave,
		WNew:                d.WNew,
		MaxSameTopicStreak:  d.MaxSameTopicStreak,
		RequireContrastPair: d.RequireContrastPair,
	}
}

// SchedulerConfig converts the stored row into the scheduler's view.
func SchedulerConfig(cfg model.SessionConfig) scheduler.Config {
	return scheduler.Config{
		Size:                cfg.SessionSize,
		Difficulty:          scheduler.Tier(cfg.Difficulty),
		WDue:                cfg.WDue,
		WInterleave:         cfg.WInterleave,
		WNew:                cfg.WNew,
		MaxSameTopicStreak:  cfg.MaxSameTopicStreak,
		RequireContrastPair: cfg.RequireContrastPair,
	}
}
