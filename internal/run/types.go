package run

import (
	"github.com/google/uuid"
)

// Evaluation is one agent's recorded episodes on one environment, plus its score.
type Evaluation struct {
	ID                     uuid.UUID `json:"id"`
	Dir                    string    `json:"-"`
	EnvID                  string    `json:"env_id"`
	Score                  float64   `json:"score"`
	EpisodeRewards         []float64 `json:"episode_rewards"`
	EpisodeLengths         []int     `json:"episode_lengths"`
	EpisodeTypes           []string  `json:"episode_types,omitempty"`
	Timestamps             []float64 `json:"timestamps"`
	InitialResetTimestamps []float64 `json:"initial_reset_timestamps"`
	DataSources            []int     `json:"data_sources"`
}

func (e *Evaluation) EpisodeCount() int {
	return len(e.EpisodeRewards)
}

// TotalTimesteps sums the episode lengths.
func (e *Evaluation) TotalTimesteps() int {
	var total int
	for _, l := range e.EpisodeLengths {
		total += l
	}
	return total
}

// TaskRun groups the evaluations of one benchmark run on one environment.
type TaskRun struct {
	EnvID       string        `json:"env_id"`
	BenchmarkID string        `json:"benchmark_id"`
	Evaluations []*Evaluation `json:"evaluations"`
}

// MeanScore averages the evaluation scores. ok is false when there are none.
func (t *TaskRun) MeanScore() (score float64, ok bool) {
	if len(t.Evaluations) == 0 {
		return 0, false
	}
	var sum float64
	for _, e := range t.Evaluations {
		sum += e.Score
	}
	return sum / float64(len(t.Evaluations)), true
}

type Metadata struct {
	Username   string `json:"username"`
	Title      string `json:"title"`
	Repository string `json:"repository"`
	Commit     string `json:"commit"`
	Command    string `json:"command"`
}

// BenchmarkRun is one benchmark submission. TaskRuns has one entry per environment of
// the benchmark, sorted by env id.
type BenchmarkRun struct {
	Metadata
	Name     string     `json:"name"`
	Path     string     `json:"-"`
	TaskRuns []*TaskRun `json:"task_runs"`
}

func (b *BenchmarkRun) Evaluations() []*Evaluation {
	var out []*Evaluation
	for _, t := range b.TaskRuns {
		out = append(out, t.Evaluations...)
	}
	return out
}

func (b *BenchmarkRun) TaskRun(envID string) (*TaskRun, bool) {
	for _, t := range b.TaskRuns {
		if t.EnvID == envID {
			return t, true
		}
	}
	return nil, false
}
