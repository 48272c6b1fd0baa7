package scheduler

import (
	"sort"

	"github.com/studykit/interleave/internal/tuning"
)

// SolveParams configure one solver run.
type SolveParams struct {
	Size               int
	MaxSameTopicStreak int
	HardRunCap         int
	Tuning             tuning.Params
}

// SolveResult is the solver's output: the ordered picks plus bookkeeping the
// generator folds into the session result.
type SolveResult struct {
	Items       []SessionItem
	PoolCounts  map[PoolType]int
	FillMode    FillMode
	Relaxations RelaxationCounts
}

// GreedySolver composes the session position by position, trying each rung
// of the relaxation ladder before falling back to the best-scoring item
// anywhere. It guarantees forward progress whenever any pool with remaining
// quota still has unused candidates.
type GreedySolver struct{}

// NewSolver returns the default greedy solver.
func NewSolver() *GreedySolver {
	return &GreedySolver{}
}

// solveState tracks the constraint windows during composition.
type solveState struct {
	used        map[string]bool
	topicWindow []string // most recent last, bounded by streak + widest delta
	windowCap   int
	hardRun     int
}

func (st *solveState) record(c *Candidate, hardThreshold float64) {
	st.used[c.ID] = true
	st.topicWindow = append(st.topicWindow, c.Topic)
	if len(st.topicWindow) > st.windowCap {
		st.topicWindow = st.topicWindow[len(st.topicWindow)-st.windowCap:]
	}
	if c.Difficulty > hardThreshold {
		st.hardRun++
	} else {
		st.hardRun = 0
	}
}

// violatesStreak reports whether picking topic would make the last `allow`
// consecutive topics all identical.
func (st *solveState) violatesStreak(topic string, allow int) bool {
	if allow <= 0 || len(st.topicWindow) < allow {
		return false
	}
	for _, recent := range st.topicWindow[len(st.topicWindow)-allow:] {
		if recent != topic {
			return false
		}
	}
	return true
}

// violatesHardRun reports whether picking the candidate would push the
// consecutive high-difficulty run past the cap.
func (st *solveState) violatesHardRun(c *Candidate, capRun int, hardThreshold float64) bool {
	if capRun <= 0 {
		return false
	}
	return c.Difficulty > hardThreshold && st.hardRun >= capRun
}

// Solve runs the greedy composition. Quotas must already be clamped to pool
// sizes; the solver only decrements them.
func (s *GreedySolver) Solve(pools map[PoolType][]*Candidate, quotas map[PoolType]int, params SolveParams) SolveResult {
	remaining := make(map[PoolType]int, len(quotas))
	for pool, q := range quotas {
		remaining[pool] = q
	}

	st := &solveState{
		used:      make(map[string]bool),
		windowCap: params.MaxSameTopicStreak + params.Tuning.MaxStreakDelta(),
	}
	if st.windowCap < 1 {
		st.windowCap = 1
	}

	result := SolveResult{PoolCounts: make(map[PoolType]int)}

	for pos := 0; pos < params.Size; pos++ {
		pick, pool := s.pickAt(pools, remaining, st, params, &result.Relaxations)
		if pick == nil {
			break
		}
		st.record(pick, params.Tuning.HardDifficultyThreshold)
		remaining[pool]--
		result.PoolCounts[pool]++
		result.Items = append(result.Items, SessionItem{
			CardID:    pick.ID,
			Pool:      pick.Pool,
			Topic:     pick.Topic,
			Principle: pick.Principle,
			Position:  pos,
		})
	}

	result.FillMode = classifyFill(len(result.Items), params.Size, params.Tuning.RelaxedFillRatio)
	return result
}

// pickAt selects the item for one position: ladder rungs in order, then the
// global best-available fallback.
func (s *GreedySolver) pickAt(pools map[PoolType][]*Candidate, remaining map[PoolType]int, st *solveState, params SolveParams, relax *RelaxationCounts) (*Candidate, PoolType) {
	order := quotaOrder(remaining)
	if len(order) == 0 {
		return nil, ""
	}

	for level, step := range params.Tuning.Ladder {
		allow := params.MaxSameTopicStreak + step.TopicStreakDelta
		for _, pool := range order {
			for _, c := range pools[pool] {
				if st.used[c.ID] {
					continue
				}
				if st.violatesStreak(c.Topic, allow) {
					continue
				}
				if !step.DropHardRun && st.violatesHardRun(c, params.HardRunCap, params.Tuning.HardDifficultyThreshold) {
					continue
				}
				if level > 0 {
					s.countRelaxation(c, st, params, relax)
				}
				return c, pool
			}
		}
	}

	// Fallback: highest-scoring unused item across all pools with quota.
	var best *Candidate
	var bestPool PoolType
	for _, pool := range order {
		for _, c := range pools[pool] {
			if st.used[c.ID] {
				continue
			}
			if best == nil || lessCandidate(c, best) {
				best = c
				bestPool = pool
			}
			break // pool is score-sorted; first unused is its best
		}
	}
	if best != nil {
		relax.Fallback++
	}
	return best, bestPool
}

// countRelaxation attributes a relaxed pick to the constraint kinds its
// strict-level check would have failed.
func (s *GreedySolver) countRelaxation(c *Candidate, st *solveState, params SolveParams, relax *RelaxationCounts) {
	if st.violatesStreak(c.Topic, params.MaxSameTopicStreak) {
		relax.TopicStreak++
	}
	if st.violatesHardRun(c, params.HardRunCap, params.Tuning.HardDifficultyThreshold) {
		relax.HardRun++
	}
}

// quotaOrder returns the pools with remaining quota, sorted by remaining
// count descending (pool name as tie-break for determinism).
func quotaOrder(remaining map[PoolType]int) []PoolType {
	var order []PoolType
	for _, pool := range AllPools() {
		if remaining[pool] > 0 {
			order = append(order, pool)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return remaining[order[i]] > remaining[order[j]]
	})
	return order
}

func classifyFill(actual, requested int, relaxedRatio float64) FillMode {
	switch {
	case requested > 0 && actual >= requested:
		return FillStrict
	case float64(actual) >= relaxedRatio*float64(requested) && actual > 0:
		return FillRelaxed
	default:
		return FillExhausted
	}
}
