package scheduler

import (
	"testing"

	"github.com/studykit/interleave/internal/tuning"
)

func solveParams(size, streak, hardCap int) SolveParams {
	return SolveParams{
		Size:               size,
		MaxSameTopicStreak: streak,
		HardRunCap:         hardCap,
		Tuning:             tuning.Default(),
	}
}

// scoredPool builds a pool already sorted descending by score, mirroring
// what the generator hands the solver.
func scoredPool(pool PoolType, specs ...struct {
	id, topic string
	diff      float64
}) []*Candidate {
	cands := make([]*Candidate, len(specs))
	for i, s := range specs {
		cands[i] = &Candidate{
			ID:         s.id,
			Pool:       pool,
			Topic:      s.topic,
			Difficulty: s.diff,
			HasProfile: true,
			score:      1.0 - float64(i)*0.01,
		}
	}
	return cands
}

type cs = struct {
	id, topic string
	diff      float64
}

func TestSolve_FillsQuotasStrictly(t *testing.T) {
	pools := map[PoolType][]*Candidate{
		PoolDue:        scoredPool(PoolDue, cs{"d1", "algebra", 1}, cs{"d2", "geometry", 1}, cs{"d3", "calculus", 1}, cs{"d4", "algebra", 1}),
		PoolInterleave: scoredPool(PoolInterleave, cs{"i1", "statistics", 1}),
		PoolNew:        scoredPool(PoolNew, cs{"n1", "topology", 1}),
	}
	quotas := map[PoolType]int{PoolDue: 4, PoolInterleave: 1, PoolNew: 1}

	res := NewSolver().Solve(pools, quotas, solveParams(6, 2, 2))

	if len(res.Items) != 6 {
		t.Fatalf("got %d items, want 6", len(res.Items))
	}
	if res.FillMode != FillStrict {
		t.Errorf("FillMode = %q, want strict", res.FillMode)
	}
	if res.PoolCounts[PoolDue] != 4 || res.PoolCounts[PoolInterleave] != 1 || res.PoolCounts[PoolNew] != 1 {
		t.Errorf("pool counts = %v, want 4/1/1", res.PoolCounts)
	}
	for i, it := range res.Items {
		if it.Position != i {
			t.Errorf("item %d has position %d", i, it.Position)
		}
	}
}

func TestSolve_QuotaConservation(t *testing.T) {
	pools := map[PoolType][]*Candidate{
		PoolDue:        scoredPool(PoolDue, cs{"d1", "a", 1}, cs{"d2", "b", 1}),
		PoolInterleave: scoredPool(PoolInterleave, cs{"i1", "c", 1}),
		PoolNew:        nil,
	}
	quotas := map[PoolType]int{PoolDue: 2, PoolInterleave: 1, PoolNew: 0}

	res := NewSolver().Solve(pools, quotas, solveParams(10, 2, 2))

	total := 0
	for _, n := range res.PoolCounts {
		total += n
	}
	if total != len(res.Items) {
		t.Errorf("pool counts sum %d != actual size %d", total, len(res.Items))
	}
	if len(res.Items) > 10 {
		t.Errorf("actual %d exceeds requested 10", len(res.Items))
	}
	if res.FillMode != FillExhausted {
		t.Errorf("FillMode = %q, want exhausted for 3/10", res.FillMode)
	}
}

func TestSolve_TopicStreakAvoidedWhenPossible(t *testing.T) {
	// Top-scored due cards are all algebra, but geometry is available; the
	// strict level must break the streak instead of letting three algebra
	// picks run together.
	pools := map[PoolType][]*Candidate{
		PoolDue: scoredPool(PoolDue,
			cs{"d1", "algebra", 1}, cs{"d2", "algebra", 1}, cs{"d3", "algebra", 1},
			cs{"d4", "geometry", 1}, cs{"d5", "geometry", 1}),
	}
	quotas := map[PoolType]int{PoolDue: 5}

	res := NewSolver().Solve(pools, quotas, solveParams(5, 2, 2))

	if run := longestTopicRun(res.Items); run > 2 {
		t.Errorf("longest same-topic run = %d, want <= 2 with alternatives available", run)
	}
	if res.Relaxations.TopicStreak != 0 {
		t.Errorf("TopicStreak relaxations = %d, want 0", res.Relaxations.TopicStreak)
	}
}

func TestSolve_RelaxesWhenOnlyOneTopic(t *testing.T) {
	pools := map[PoolType][]*Candidate{
		PoolDue: scoredPool(PoolDue,
			cs{"d1", "algebra", 1}, cs{"d2", "algebra", 1}, cs{"d3", "algebra", 1},
			cs{"d4", "algebra", 1}, cs{"d5", "algebra", 1}),
	}
	quotas := map[PoolType]int{PoolDue: 5}

	res := NewSolver().Solve(pools, quotas, solveParams(5, 2, 2))

	if len(res.Items) != 5 {
		t.Fatalf("got %d items, want 5 — relaxation must keep the session moving", len(res.Items))
	}
	if res.Relaxations.Total() == 0 {
		t.Errorf("expected relaxed or fallback picks, counters are all zero")
	}
	// Soft bound from the widest ladder rung: streak cap 2 + delta 3.
	if run := longestTopicRun(res.Items); run > 2+3 {
		t.Errorf("run %d exceeds widest relaxation allowance", run)
	}
}

func TestSolve_HardRunCapRespected(t *testing.T) {
	pools := map[PoolType][]*Candidate{
		PoolDue: scoredPool(PoolDue,
			cs{"d1", "a", 2.5}, cs{"d2", "b", 2.5}, cs{"d3", "c", 2.5},
			cs{"d4", "d", 1.0}, cs{"d5", "e", 1.0}),
	}
	quotas := map[PoolType]int{PoolDue: 5}

	res := NewSolver().Solve(pools, quotas, solveParams(5, 2, 1))

	// With cap 1 and easy cards available, no two hard picks may be
	// adjacent at the strict level.
	hard := func(it SessionItem) bool {
		for _, c := range pools[PoolDue] {
			if c.ID == it.CardID {
				return c.Difficulty > 2.0
			}
		}
		return false
	}
	for i := 0; i < len(res.Items)-1; i++ {
		if hard(res.Items[i]) && hard(res.Items[i+1]) && res.Relaxations.Total() == 0 {
			t.Errorf("adjacent hard picks at %d without any relaxation recorded", i)
		}
	}
	if len(res.Items) != 5 {
		t.Errorf("got %d items, want 5", len(res.Items))
	}
}

func TestSolve_QuotaOrderPrefersLargestRemaining(t *testing.T) {
	pools := map[PoolType][]*Candidate{
		PoolDue:        scoredPool(PoolDue, cs{"d1", "a", 1}, cs{"d2", "b", 1}, cs{"d3", "c", 1}),
		PoolInterleave: scoredPool(PoolInterleave, cs{"i1", "d", 1}),
	}
	quotas := map[PoolType]int{PoolDue: 3, PoolInterleave: 1}

	res := NewSolver().Solve(pools, quotas, solveParams(4, 2, 2))

	// First pick must come from the due pool, which has the larger quota.
	if res.Items[0].Pool != PoolDue {
		t.Errorf("first pick from %q, want due", res.Items[0].Pool)
	}
}

func TestSolve_EmptyPools(t *testing.T) {
	pools := map[PoolType][]*Candidate{}
	quotas := map[PoolType]int{}

	res := NewSolver().Solve(pools, quotas, solveParams(10, 2, 2))

	if len(res.Items) != 0 {
		t.Errorf("got %d items, want 0", len(res.Items))
	}
	if res.FillMode != FillExhausted {
		t.Errorf("FillMode = %q, want exhausted", res.FillMode)
	}
}

func TestClassifyFill(t *testing.T) {
	ratio := tuning.Default().RelaxedFillRatio
	tests := []struct {
		actual, requested int
		want              FillMode
	}{
		{10, 10, FillStrict},
		{8, 10, FillRelaxed},
		{7, 10, FillExhausted},
		{0, 10, FillExhausted},
		{1, 1, FillStrict},
	}
	for _, tt := range tests {
		if got := classifyFill(tt.actual, tt.requested, ratio); got != tt.want {
			t.Errorf("classifyFill(%d, %d) = %q, want %q", tt.actual, tt.requested, got, tt.want)
		}
	}
}
