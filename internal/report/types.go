package report

import (
	"runtime"
	"time"
)

type Report struct {
	Meta ReportMeta   `json:"meta"`
	Envs []EnvSummary `json:"envs"`
	Runs []RunSummary `json:"runs"`
}

type ReportMeta struct {
	BenchmarkID string          `json:"benchmark_id"`
	Benchmark   string          `json:"benchmark"`
	DataPath    string          `json:"data_path"`
	Timestamp   time.Time       `json:"timestamp"`
	IndexedAt   time.Time       `json:"indexed_at"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// EnvSummary is the best and worst score recorded for one environment. Best and Worst
// are nil when no run has evaluations for it.
type EnvSummary struct {
	EnvID        string      `json:"env_id"`
	MaxTimesteps int         `json:"max_timesteps"`
	Best         *ScoreEntry `json:"best,omitempty"`
	Worst        *ScoreEntry `json:"worst,omitempty"`
}

type ScoreEntry struct {
	RunName  string    `json:"run_name"`
	Score    float64   `json:"score"`
	CachedAt time.Time `json:"cached_at"`
}

type RunSummary struct {
	Name       string      `json:"name"`
	Title      string      `json:"title"`
	Username   string      `json:"username"`
	Commit     string      `json:"commit"`
	Tasks      []TaskEntry `json:"tasks"`
	MeanScore  float64     `json:"mean_score"`
	ScoredEnvs int         `json:"scored_envs"`
}

// TaskEntry is the mean evaluation score of one run on one environment. Scored is false
// when the run has no evaluations for it.
type TaskEntry struct {
	EnvID       string  `json:"env_id"`
	Evaluations int     `json:"evaluations"`
	Score       float64 `json:"score"`
	Scored      bool    `json:"scored"`
	Normalized  float64 `json:"normalized"`
}
