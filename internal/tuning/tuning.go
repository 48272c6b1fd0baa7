// Package tuning holds the scheduler's empirically chosen constants — the
// relaxation ladder and the session quality thresholds — as data rather than
// code, so they can be overridden from a YAML file without a rebuild.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RelaxStep is one rung of the constraint relaxation ladder. Steps are tried
// in order; each loosens the topic-streak allowance and may drop the
// hard-item run constraint entirely.
type RelaxStep struct {
	TopicStreakDelta int  `yaml:"topic_streak_delta"`
	DropHardRun      bool `yaml:"drop_hard_run"`
}

// QualityThresholds are the scores below which the validator emits a warning.
type QualityThresholds struct {
	Diversity    float64 `yaml:"diversity"`
	Contrast     float64 `yaml:"contrast"`
	Balance      float64 `yaml:"balance"`
	Completeness float64 `yaml:"completeness"`
}

// Params collects every tunable the scheduler consumes.
type Params struct {
	Ladder                    []RelaxStep       `yaml:"ladder"`
	HardDifficultyThreshold   float64           `yaml:"hard_difficulty_threshold"`
	ContrastStrengthThreshold float64           `yaml:"contrast_strength_threshold"`
	TargetDifficultyVariance  float64           `yaml:"target_difficulty_variance"`
	RelaxedFillRatio          float64           `yaml:"relaxed_fill_ratio"`
	Thresholds                QualityThresholds `yaml:"thresholds"`
}

// Default returns the compiled-in parameters.
func Default() Params {
	return Params{
		Ladder: []RelaxStep{
			{TopicStreakDelta: 0, DropHardRun: false},
			{TopicStreakDelta: 1, DropHardRun: false},
			{TopicStreakDelta: 3, DropHardRun: true},
		},
		HardDifficultyThreshold:   2.0,
		ContrastStrengthThreshold: 0.7,
		TargetDifficultyVariance:  0.5,
		RelaxedFillRatio:          0.8,
		Thresholds: QualityThresholds{
			Diversity:    0.7,
			Contrast:     0.5,
			Balance:      0.7,
			Completeness: 0.8,
		},
	}
}

// Load reads parameters from a YAML file. Fields absent from the file keep
// their default values.
func Load(path string) (Params, error) {
	p := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Default(), fmt.Errorf("tuning file %s: %w", path, err)
	}
	return p, nil
}

// MaxStreakDelta returns the widest topic-streak allowance in the ladder.
func (p Params) MaxStreakDelta() int {
	maxDelta := 0
	for _, step := range p.Ladder {
		if step.TopicStreakDelta > maxDelta {
			maxDelta = step.TopicStreakDelta
		}
	}
	return maxDelta
}

func (p Params) validate() error {
	if len(p.Ladder) == 0 {
		return fmt.Errorf("ladder must have at least one step")
	}
	for i, step := range p.Ladder {
		if step.TopicStreakDelta < 0 {
			return fmt.Errorf("ladder step %d: negative topic_streak_delta", i)
		}
	}
	if p.RelaxedFillRatio <= 0 || p.RelaxedFillRatio > 1 {
		return fmt.Errorf("relaxed_fill_ratio must be in (0, 1]")
	}
	return nil
}
