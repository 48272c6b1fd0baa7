package store

import (
	"context"
	"fmt"

	"github.com/studykit/interleave/internal/contrast"
	"github.com/studykit/interleave/internal/model"
)

// GraphRepo loads the topic/principle graph.
type GraphRepo interface {
	// LoadGraph reads topics, principles and contrast edges and builds
	// the in-memory graph.
	LoadGraph(ctx context.Context) (*contrast.Graph, error)
}

// GraphRepo returns a GraphRepo backed by this store.
func (s *Store) GraphRepo() GraphRepo {
	return &graphRepo{store: s}
}

type graphRepo struct {
	store *Store
}

func (r *graphRepo) LoadGraph(ctx context.Context) (*contrast.Graph, error) {
	var topics []model.Topic
	if err := r.store.db.WithContext(ctx).Preload("Parent").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	var principles []model.Principle
	if err := r.store.db.WithContext(ctx).Preload("Topic").Find(&principles).Error; err != nil {
		return nil, fmt.Errorf("load principles: %w", err)
	}
	var edges []model.PrincipleContrast
	if err := r.store.db.WithContext(ctx).Preload("Principle").Preload("ContrastsWith").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("load contrast edges: %w", err)
	}

	gTopics := make([]contrast.Topic, 0, len(topics))
	for _, t := range topics {
		gt := contrast.Topic{Name: t.Name}
		if t.Parent != nil {
			gt.Parent = t.Parent.Name
		}
		gTopics = append(gTopics, gt)
	}

	gPrinciples := make([]contrast.Principle, 0, len(principles))
	for _, p := range principles {
		gp := contrast.Principle{Name: p.Name}
		if p.Topic != nil {
			gp.Topic = p.Topic.Name
		}
		gPrinciples = append(gPrinciples, gp)
	}

	pairs := make([][2]string, 0, len(edges))
	for _, e := range edges {
		if e.Principle == nil || e.ContrastsWith == nil {
			continue // dangling edge; skip rather than fail the session
		}
		pairs = append(pairs, [2]string{e.Principle.Name, e.ContrastsWith.Name})
	}

	g, err := contrast.NewGraph(gTopics, gPrinciples, pairs)
	if err != nil {
		return nil, fmt.Errorf("build contrast graph: %w", err)
	}
	return g, nil
}
