package benchmark

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultTrials        = 1
	defaultRewardCeiling = 100
	defaultNumEpisodes   = 100
)

func LoadFromFile(path string) ([]*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmarks file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]*Spec, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse benchmarks YAML: %w", err)
	}
	if len(f.Benchmarks) == 0 {
		return nil, fmt.Errorf("benchmarks file declares no benchmarks")
	}

	specs := make([]*Spec, 0, len(f.Benchmarks))
	for i := range f.Benchmarks {
		s := &f.Benchmarks[i]
		if err := validate(s, i); err != nil {
			return nil, err
		}
		scorer, err := NewScorer(s.Scorer)
		if err != nil {
			return nil, fmt.Errorf("benchmark %q: %w", s.ID, err)
		}
		s.scorer = scorer
		specs = append(specs, s)
	}
	return specs, nil
}

var validScorerTypes = map[string]bool{
	ScorerClipTo01ThenAverage: true,
	ScorerTotalReward:         true,
}

func validate(s *Spec, index int) error {
	if s.ID == "" {
		return fmt.Errorf("benchmark at index %d has no id", index)
	}
	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Scorer.Type == "" {
		s.Scorer.Type = ScorerClipTo01ThenAverage
	}
	if !validScorerTypes[s.Scorer.Type] {
		return fmt.Errorf("benchmark %q has invalid scorer type %q", s.ID, s.Scorer.Type)
	}
	if s.Scorer.NumEpisodes <= 0 {
		s.Scorer.NumEpisodes = defaultNumEpisodes
	}
	if len(s.Tasks) == 0 {
		return fmt.Errorf("benchmark %q has no tasks", s.ID)
	}

	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.EnvID == "" {
			return fmt.Errorf("benchmark %q task at index %d has no env_id", s.ID, i)
		}
		if t.MaxTimesteps < 0 || t.MaxSeconds < 0 {
			return fmt.Errorf("benchmark %q task %q has a negative budget", s.ID, t.EnvID)
		}
		if t.Trials <= 0 {
			t.Trials = defaultTrials
		}
		if t.RewardCeiling <= t.RewardFloor {
			return fmt.Errorf("benchmark %q task %q has reward_ceiling %v not above reward_floor %v",
				s.ID, t.EnvID, t.RewardCeiling, t.RewardFloor)
		}
	}
	return nil
}
