package testing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// Stats is one gym monitor stats file.
type Stats struct {
	InitialResetTimestamp float64   `json:"initial_reset_timestamp"`
	Timestamps            []float64 `json:"timestamps"`
	EpisodeLengths        []int     `json:"episode_lengths"`
	EpisodeRewards        []float64 `json:"episode_rewards"`
	EpisodeTypes          []string  `json:"episode_types,omitempty"`
}

// UniformStats builds n episodes of equal length and reward, one second apart.
func UniformStats(n, length int, reward float64) Stats {
	s := Stats{
		InitialResetTimestamp: 1000,
		Timestamps:            make([]float64, n),
		EpisodeLengths:        make([]int, n),
		EpisodeRewards:        make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.Timestamps[i] = 1000 + float64(i+1)
		s.EpisodeLengths[i] = length
		s.EpisodeRewards[i] = reward
	}
	return s
}

// WriteTrainingDir writes one manifest and one stats file per stats entry into dir.
func WriteTrainingDir(tb testing.TB, dir, envID string, stats ...Stats) {
	tb.Helper()

	require(tb, os.MkdirAll(dir, 0o755))
	for i, s := range stats {
		statsName := fmt.Sprintf("openaigym.episode_batch.%d.stats.json", i)
		writeJSON(tb, filepath.Join(dir, statsName), s)

		manifest := map[string]any{
			"stats":  statsName,
			"videos": [][2]string{},
			"env_info": map[string]string{
				"env_id":      envID,
				"gym_version": "0.9.1",
			},
		}
		writeJSON(tb, filepath.Join(dir, fmt.Sprintf("openaigym.manifest.%d.manifest.json", i)), manifest)
	}
}

// WriteEvaluation writes a training directory at <runDir>/<name>/gym.
func WriteEvaluation(tb testing.TB, runDir, name, envID string, stats ...Stats) string {
	tb.Helper()
	dir := filepath.Join(runDir, name, "gym")
	WriteTrainingDir(tb, dir, envID, stats...)
	return dir
}

// WriteRunMetadata writes benchmark_run_metadata.yaml with the given fields.
func WriteRunMetadata(tb testing.TB, runDir string, fields map[string]string) {
	tb.Helper()
	writeYAML(tb, filepath.Join(runDir, "benchmark_run_metadata.yaml"), fields)
}

// CompleteRunMetadata returns a full set of run metadata fields.
func CompleteRunMetadata(title string) map[string]string {
	return map[string]string{
		"username":   "ada",
		"title":      title,
		"repository": "https://github.com/example/agents",
		"commit":     "3f2a9c1",
		"command":    "python train.py --env all",
	}
}

// WriteBenchmarkMetadata writes benchmark_metadata.yaml declaring the benchmark id.
func WriteBenchmarkMetadata(tb testing.TB, dataDir, benchmarkID string) {
	tb.Helper()
	writeYAML(tb, filepath.Join(dataDir, "benchmark_metadata.yaml"), map[string]string{"id": benchmarkID})
}

func writeJSON(tb testing.TB, path string, v any) {
	tb.Helper()
	data, err := json.Marshal(v)
	require(tb, err)
	require(tb, os.WriteFile(path, data, 0o644))
}

func writeYAML(tb testing.TB, path string, v any) {
	tb.Helper()
	require(tb, os.MkdirAll(filepath.Dir(path), 0o755))
	data, err := yaml.Marshal(v)
	require(tb, err)
	require(tb, os.WriteFile(path, data, 0o644))
}

func require(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
}
