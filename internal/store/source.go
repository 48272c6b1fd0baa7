package store

import (
	"context"
	"time"

	"github.com/studykit/interleave/internal/model"
	"github.com/studykit/interleave/internal/scheduler"
)

// poolCapFactor caps each fetched pool at this multiple of the target size.
const poolCapFactor = 3

// PoolSource returns a scheduler.PoolSource backed by this store. Missing
// profiles are resolved to neutral defaults here, at the fetch boundary, so
// the scoring code never sees a half-populated candidate.
func (s *Store) PoolSource() scheduler.PoolSource {
	return &poolSource{
		cards:  s.CardRepo(),
		events: s.EventRepo(),
		now:    time.Now,
	}
}

type poolSource struct {
	cards  CardRepo
	events EventRepo
	now    func() time.Time
}

func (p *poolSource) Pools(ctx context.Context, userID string, targetSize int) ([]*scheduler.Candidate, []*scheduler.Candidate, []*scheduler.Candidate, error) {
	now := p.now()
	limit := poolCapFactor * targetSize

	due, err := p.cards.DuePool(ctx, userID, now, limit)
	if err != nil {
		return nil, nil, nil, err
	}
	interleave, err := p.cards.InterleavePool(ctx, userID, now, limit)
	if err != nil {
		return nil, nil, nil, err
	}
	fresh, err := p.cards.NewPool(ctx, userID, now, limit)
	if err != nil {
		return nil, nil, nil, err
	}

	return toCandidates(due, scheduler.PoolDue),
		toCandidates(interleave, scheduler.PoolInterleave),
		toCandidates(fresh, scheduler.PoolNew),
		nil
}

func (p *poolSource) RecentTopics(ctx context.Context, userID string, n int) ([]string, error) {
	return p.events.RecentTopics(ctx, userID, n)
}

func toCandidates(cards []model.Flashcard, pool scheduler.PoolType) []*scheduler.Candidate {
	out := make([]*scheduler.Candidate, 0, len(cards))
	for i := range cards {
		out = append(out, toCandidate(&cards[i], pool))
	}
	return out
}

// toCandidate maps a card row to the scheduler's view, substituting the
// neutral topic and mid-range difficulty when the profile is absent.
func toCandidate(card *model.Flashcard, pool scheduler.PoolType) *scheduler.Candidate {
	c := &scheduler.Candidate{
		ID:           card.PublicID,
		Pool:         pool,
		Topic:        scheduler.UnknownTopic,
		Difficulty:   scheduler.DefaultDifficulty,
		Due:          card.NextReview,
		CreatedAt:    card.CreatedAt,
		LastReviewed: card.LastReviewed,
		TotalReviews: card.TotalReviews,
	}
	if prof := card.Profile; prof != nil {
		c.HasProfile = true
		c.Difficulty = prof.Difficulty
		if prof.Topic != nil {
			c.Topic = prof.Topic.Name
		}
		if prof.Principle != nil {
			c.Principle = prof.Principle.Name
		}
	}
	return c
}
