package scheduler

import (
	"fmt"
	"math"

	"github.com/studykit/interleave/internal/tuning"
)

// QualityReport is the validator's assessment of a finished session.
type QualityReport struct {
	Diversity    float64  `json:"diversity"`
	Contrast     float64  `json:"contrast"`
	Balance      float64  `json:"balance"`
	Completeness float64  `json:"completeness"`
	Overall      float64  `json:"overall"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Sub-score weights for the overall quality score.
const (
	qualityDiversityWeight    = 0.3
	qualityContrastWeight     = 0.25
	qualityBalanceWeight      = 0.25
	qualityCompletenessWeight = 0.2
)

// DefaultValidator scores sessions and repairs missing contrast pairs by
// reordering. It needs difficulty estimates to score balance, so the
// generator hands it the candidates it solved over.
type DefaultValidator struct {
	graph      ContrastGraph
	params     tuning.Params
	difficulty map[string]float64 // card ID -> difficulty estimate
}

// NewValidator builds a validator over the given contrast graph.
func NewValidator(graph ContrastGraph, params tuning.Params) *DefaultValidator {
	return &DefaultValidator{
		graph:      graph,
		params:     params,
		difficulty: make(map[string]float64),
	}
}

// SetDifficulties registers difficulty estimates for balance scoring.
func (v *DefaultValidator) SetDifficulties(cands []*Candidate) {
	for _, c := range cands {
		v.difficulty[c.ID] = c.Difficulty
	}
}

// Validate computes the four quality sub-scores and the weighted overall
// score, emitting a warning for each sub-score below its threshold.
func (v *DefaultValidator) Validate(items []SessionItem, requested int, requireContrast bool) QualityReport {
	rep := QualityReport{
		Diversity:    v.diversityScore(items),
		Contrast:     v.contrastScore(items),
		Balance:      v.balanceScore(items),
		Completeness: completenessScore(len(items), requested),
	}
	rep.Overall = qualityDiversityWeight*rep.Diversity +
		qualityContrastWeight*rep.Contrast +
		qualityBalanceWeight*rep.Balance +
		qualityCompletenessWeight*rep.Completeness

	th := v.params.Thresholds
	if rep.Diversity < th.Diversity {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("low topic diversity (%.2f)", rep.Diversity))
	}
	if requireContrast && rep.Contrast < th.Contrast {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("few contrasting adjacent pairs (%.2f)", rep.Contrast))
	}
	if rep.Balance < th.Balance {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("uneven difficulty balance (%.2f)", rep.Balance))
	}
	if rep.Completeness < th.Completeness {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("session shorter than requested (%.2f)", rep.Completeness))
	}
	return rep
}

// diversityScore is the unique-topic ratio with penalties for heavy topic
// repetition and long same-topic runs.
func (v *DefaultValidator) diversityScore(items []SessionItem) float64 {
	if len(items) == 0 {
		return 0
	}
	counts := make(map[string]int)
	for _, it := range items {
		counts[it.Topic]++
	}
	score := float64(len(counts)) / float64(len(items))

	for _, n := range counts {
		if n > 1 {
			score -= 0.05 * float64(n-1)
		}
	}
	if run := longestTopicRun(items); run > 1 {
		score -= 0.05 * float64(run-1)
	}
	return clamp01(score)
}

// contrastScore is the fraction of adjacent pairs whose principles contrast.
func (v *DefaultValidator) contrastScore(items []SessionItem) float64 {
	if len(items) < 2 {
		return 1.0
	}
	contrasting := 0
	for i := 0; i < len(items)-1; i++ {
		if v.pairContrasts(items[i], items[i+1]) {
			contrasting++
		}
	}
	return float64(contrasting) / float64(len(items)-1)
}

// balanceScore compares the variance of difficulty estimates against the
// target variance, penalizing sessions that are uniformly easy or hard as
// well as wildly uneven ones.
func (v *DefaultValidator) balanceScore(items []SessionItem) float64 {
	if len(items) < 2 {
		return 1.0
	}
	var sum float64
	diffs := make([]float64, 0, len(items))
	for _, it := range items {
		d, ok := v.difficulty[it.CardID]
		if !ok {
			d = DefaultDifficulty
		}
		diffs = append(diffs, d)
		sum += d
	}
	mean := sum / float64(len(diffs))
	var variance float64
	for _, d := range diffs {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(diffs))
	return clamp01(1 - math.Abs(variance-v.params.TargetDifficultyVariance))
}

// completenessScore is actual/requested, capped at 1.0.
func completenessScore(actual, requested int) float64 {
	if requested <= 0 {
		return 1.0
	}
	return clamp01(float64(actual) / float64(requested))
}

// EnforceContrast guarantees at least one adjacent contrasting pair when the
// session contains any contrasting pair at all. It searches all item pairs
// for the strongest one and relocates the second item to sit immediately
// after the first, renumbering positions. Items are never removed. Returns
// the (possibly reordered) items and whether a move happened.
func (v *DefaultValidator) EnforceContrast(items []SessionItem) ([]SessionItem, bool) {
	for i := 0; i < len(items)-1; i++ {
		if v.pairContrasts(items[i], items[i+1]) {
			return items, false // already satisfied
		}
	}

	bestI, bestJ := -1, -1
	bestStrength := 0.0
	for i := 0; i < len(items); i++ {
		for j := 0; j < len(items); j++ {
			if i == j || !v.pairContrasts(items[i], items[j]) {
				continue
			}
			strength := 0.8
			if items[i].Topic != items[j].Topic {
				strength += 0.1
			}
			if items[i].Pool != items[j].Pool {
				strength += 0.1
			}
			if strength > bestStrength {
				bestStrength = strength
				bestI, bestJ = i, j
			}
		}
	}
	if bestI < 0 || bestStrength <= v.params.ContrastStrengthThreshold {
		return items, false
	}
	return moveAfter(items, bestJ, bestI), true
}

func (v *DefaultValidator) pairContrasts(a, b SessionItem) bool {
	if a.Principle == "" || b.Principle == "" {
		return false
	}
	return v.graph.Contrasts(a.Principle, b.Principle)
}

// moveAfter relocates items[from] to the slot immediately after the item
// currently at anchor, then renumbers positions.
func moveAfter(items []SessionItem, from, anchor int) []SessionItem {
	moved := items[from]
	rest := make([]SessionItem, 0, len(items))
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	// Find the anchor in the compacted slice.
	anchorIdx := anchor
	if from < anchor {
		anchorIdx--
	}

	out := make([]SessionItem, 0, len(items))
	out = append(out, rest[:anchorIdx+1]...)
	out = append(out, moved)
	out = append(out, rest[anchorIdx+1:]...)
	for i := range out {
		out[i].Position = i
	}
	return out
}

func longestTopicRun(items []SessionItem) int {
	longest, run := 0, 0
	prev := ""
	for i, it := range items {
		if i > 0 && it.Topic == prev {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = it.Topic
	}
	return longest
}
