package benchmark

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownBenchmark  = errors.New("unknown benchmark")
	ErrUnknownEnv        = errors.New("environment is not part of the benchmark")
	ErrMultipleTaskSpecs = errors.New("multiple task specs for single environment")
)

const (
	ScorerClipTo01ThenAverage = "clip_to_01_then_average"
	ScorerTotalReward         = "total_reward"
)

type File struct {
	Benchmarks []Spec `yaml:"benchmarks"`
}

// Spec declares the environments of a benchmark, how long agents may train on each and
// how their evaluations are scored.
type Spec struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	ViewGroup   string       `yaml:"view_group,omitempty" json:"view_group,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Scorer      ScorerConfig `yaml:"scorer" json:"scorer"`
	Tasks       []Task       `yaml:"tasks" json:"tasks"`

	scorer Scorer
}

type ScorerConfig struct {
	Type        string `yaml:"type" json:"type"`
	NumEpisodes int    `yaml:"num_episodes,omitempty" json:"num_episodes,omitempty"`
}

type Task struct {
	EnvID         string  `yaml:"env_id" json:"env_id"`
	Trials        int     `yaml:"trials" json:"trials"`
	MaxTimesteps  int     `yaml:"max_timesteps" json:"max_timesteps"`
	MaxSeconds    float64 `yaml:"max_seconds,omitempty" json:"max_seconds,omitempty"`
	RewardFloor   float64 `yaml:"reward_floor" json:"reward_floor"`
	RewardCeiling float64 `yaml:"reward_ceiling" json:"reward_ceiling"`
}

// UnmarshalYAML fills in the default trials and reward ceiling for keys the document omits.
func (t *Task) UnmarshalYAML(node *yaml.Node) error {
	type plain Task
	p := plain{Trials: defaultTrials, RewardCeiling: defaultRewardCeiling}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Task(p)
	return nil
}

// EnvIDs lists the environments in declaration order without duplicates.
func (s *Spec) EnvIDs() []string {
	seen := make(map[string]bool, len(s.Tasks))
	ids := make([]string, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if seen[t.EnvID] {
			continue
		}
		seen[t.EnvID] = true
		ids = append(ids, t.EnvID)
	}
	return ids
}

// TaskSpecs returns every task declared for envID.
func (s *Spec) TaskSpecs(envID string) []Task {
	var tasks []Task
	for _, t := range s.Tasks {
		if t.EnvID == envID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// TaskSpec returns the single task declared for envID.
func (s *Spec) TaskSpec(envID string) (Task, error) {
	tasks := s.TaskSpecs(envID)
	switch len(tasks) {
	case 0:
		return Task{}, fmt.Errorf("%s in %s: %w", envID, s.ID, ErrUnknownEnv)
	case 1:
		return tasks[0], nil
	default:
		return Task{}, fmt.Errorf("%s in %s has %d task specs: %w", envID, s.ID, len(tasks), ErrMultipleTaskSpecs)
	}
}

// ScoreEvaluation runs the benchmark's scorer over the raw episodes of one evaluation.
// The result holds one entry per task declared for envID.
func (s *Spec) ScoreEvaluation(envID string, episodes Episodes) (*Result, error) {
	tasks := s.TaskSpecs(envID)
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%s in %s: %w", envID, s.ID, ErrUnknownEnv)
	}
	if s.scorer == nil {
		return nil, fmt.Errorf("benchmark %s has no scorer", s.ID)
	}
	return s.scorer.ScoreEvaluation(envID, tasks, episodes), nil
}
