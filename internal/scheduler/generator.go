package scheduler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/studykit/interleave/internal/tuning"
)

// recentTopicWindow is how many recent review topics feed the diversity
// sub-score.
const recentTopicWindow = 5

// Request asks for one session. Seed is optional; with the same seed, config
// and pools the item ordering is reproducible. SizeOverride and
// DifficultyOverride take precedence over the stored config when set.
type Request struct {
	UserID             string
	Config             Config
	Seed               string
	SizeOverride       int
	DifficultyOverride Tier
}

// Generator orchestrates one session build: fetch pools, resolve the dial,
// score, order, solve, validate, assemble.
type Generator struct {
	source    PoolSource
	scorer    Scorer
	solver    Solver
	validator Validator
	tuning    tuning.Params
	graph     ContrastGraph
	now       func() time.Time
}

// NewGenerator wires a generator from its collaborators. A nil scorer or
// solver gets the default implementation.
func NewGenerator(source PoolSource, graph ContrastGraph, params tuning.Params) *Generator {
	return &Generator{
		source: source,
		scorer: NewScorer(),
		solver: NewSolver(),
		tuning: params,
		graph:  graph,
		now:    time.Now,
	}
}

// WithScorer swaps the scoring strategy.
func (g *Generator) WithScorer(s Scorer) *Generator {
	g.scorer = s
	return g
}

// WithSolver swaps the composition strategy.
func (g *Generator) WithSolver(s Solver) *Generator {
	g.solver = s
	return g
}

// WithValidator swaps the validation strategy. Without one, a
// DefaultValidator is built per call with the scored candidates'
// difficulty estimates.
func (g *Generator) WithValidator(v Validator) *Generator {
	g.validator = v
	return g
}

// WithClock fixes the generator's clock. Used by tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds one session. Pool exhaustion is not an error: it returns
// an empty or short session with the matching fill mode. The only surfaced
// error kinds are an out-of-bounds size and a pool source failure.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	cfg := req.Config
	size := cfg.Size
	if req.SizeOverride != 0 {
		size = req.SizeOverride
	}
	if size < MinSessionSize || size > MaxSessionSize {
		return nil, &ErrInvalidSize{Size: size}
	}
	tier := cfg.Difficulty
	if req.DifficultyOverride != "" {
		tier = req.DifficultyOverride
	}

	dial := ResolveDial(tier, cfg.WDue, cfg.WInterleave, cfg.WNew)
	now := g.now()

	due, interleave, fresh, err := g.source.Pools(ctx, req.UserID, size)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pools: %w", err)
	}
	recentTopics, err := g.source.RecentTopics(ctx, req.UserID, recentTopicWindow)
	if err != nil {
		// History only shapes the diversity score; proceed without it.
		recentTopics = nil
	}

	pools := map[PoolType][]*Candidate{
		PoolDue:        due,
		PoolInterleave: interleave,
		PoolNew:        fresh,
	}

	in := ScoreInputs{Now: now, Tier: dial.Tier, Beta: dial.Beta, RecentTopics: recentTopics}
	var tieRNG *rand.Rand
	if req.Seed != "" {
		tieRNG = newTieBreaker(req.UserID, req.Seed)
	}
	for _, pool := range AllPools() {
		for _, c := range pools[pool] {
			c.score = g.scorer.Score(c, in)
		}
		orderPool(pools[pool], tieRNG)
	}

	quotas := computeQuotas(size, dial, map[PoolType]int{
		PoolDue:        len(due),
		PoolInterleave: len(interleave),
		PoolNew:        len(fresh),
	})

	solved := g.solver.Solve(pools, quotas, SolveParams{
		Size:               size,
		MaxSameTopicStreak: maxStreakOrDefault(cfg.MaxSameTopicStreak),
		HardRunCap:         dial.HardRunCap,
		Tuning:             g.tuning,
	})

	validator := g.validator
	if validator == nil {
		dv := NewValidator(g.graph, g.tuning)
		for _, pool := range AllPools() {
			dv.SetDifficulties(pools[pool])
		}
		validator = dv
	}

	items := solved.Items
	if cfg.RequireContrastPair {
		items, _ = validator.EnforceContrast(items)
	}
	quality := validator.Validate(items, size, cfg.RequireContrastPair)
	if dial.Coerced {
		quality.Warnings = append(quality.Warnings,
			fmt.Sprintf("unknown difficulty tier %q, using medium", tier))
	}

	return &Result{
		SessionID:     sessionID(req.UserID, now, req.Seed),
		UserID:        req.UserID,
		Items:         items,
		RequestedSize: size,
		ActualSize:    len(items),
		FillMode:      solved.FillMode,
		PoolMix:       poolMix(solved.PoolCounts, len(items)),
		PoolFetched: map[PoolType]int{
			PoolDue:        len(due),
			PoolInterleave: len(interleave),
			PoolNew:        len(fresh),
		},
		Relaxations: solved.Relaxations,
		Dial:        dial,
		Quality:     quality,
		GeneratedAt: now,
	}, nil
}

// computeQuotas splits the session size across pools by the dial weights
// using largest remainders, then clamps each quota to its pool size and
// redistributes the slack to pools with spare candidates so thin pools do
// not starve the session.
func computeQuotas(size int, dial DialParams, poolSizes map[PoolType]int) map[PoolType]int {
	weights := map[PoolType]float64{
		PoolDue:        dial.WDue,
		PoolInterleave: dial.WInterleave,
		PoolNew:        dial.WNew,
	}

	quotas := make(map[PoolType]int, 3)
	type frac struct {
		pool PoolType
		rem  float64
	}
	var fracs []frac
	assigned := 0
	for _, pool := range AllPools() {
		exact := float64(size) * weights[pool]
		whole := int(math.Floor(exact))
		quotas[pool] = whole
		assigned += whole
		fracs = append(fracs, frac{pool: pool, rem: exact - float64(whole)})
	}
	sort.SliceStable(fracs, func(i, j int) bool {
		if fracs[i].rem != fracs[j].rem {
			return fracs[i].rem > fracs[j].rem
		}
		return weights[fracs[i].pool] > weights[fracs[j].pool]
	})
	for i := 0; assigned < size; i = (i + 1) % len(fracs) {
		quotas[fracs[i].pool]++
		assigned++
	}

	// Clamp to what each pool actually holds, collecting the overflow.
	overflow := 0
	for _, pool := range AllPools() {
		if quotas[pool] > poolSizes[pool] {
			overflow += quotas[pool] - poolSizes[pool]
			quotas[pool] = poolSizes[pool]
		}
	}
	// Hand the overflow to pools with spare candidates, heaviest first.
	for overflow > 0 {
		moved := false
		for _, pool := range AllPools() {
			if overflow == 0 {
				break
			}
			if spare := poolSizes[pool] - quotas[pool]; spare > 0 {
				quotas[pool]++
				overflow--
				moved = true
			}
		}
		if !moved {
			break // every pool exhausted; session will run short
		}
	}
	return quotas
}

func poolMix(counts map[PoolType]int, total int) map[PoolType]PoolShare {
	mix := make(map[PoolType]PoolShare, 3)
	for _, pool := range AllPools() {
		share := PoolShare{Count: counts[pool]}
		if total > 0 {
			share.Percent = 100 * float64(counts[pool]) / float64(total)
		}
		mix[pool] = share
	}
	return mix
}

// sessionID derives a stable opaque identifier from user, wall clock and
// seed. The timestamp keeps identical seeds from colliding across calls.
func sessionID(userID string, now time.Time, seed string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s", userID, now.UnixNano(), seed)
	return hex.EncodeToString(h.Sum(nil))[:32]
}

func maxStreakOrDefault(v int) int {
	if v <= 0 {
		return 2
	}
	return v
}
