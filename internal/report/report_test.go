package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/run"
	"github.com/DjordjeVuckovic/bench-viewer/internal/score"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoEnvBenchmark = `
benchmarks:
  - id: Two-v0
    name: Two
    tasks:
      - env_id: CartPole-v0
        max_timesteps: 2000
        reward_ceiling: 200
      - env_id: Pendulum-v0
        max_timesteps: 1000
        reward_floor: -1400
        reward_ceiling: 0
`

type fakeSource struct {
	spec   *benchmark.Spec
	runs   []*run.BenchmarkRun
	scores *score.Cache
}

func (f *fakeSource) Spec() *benchmark.Spec     { return f.spec }
func (f *fakeSource) DataPath() string          { return "/data/bench" }
func (f *fakeSource) IndexedAt() time.Time      { return time.Unix(1700000000, 0) }
func (f *fakeSource) Runs() []*run.BenchmarkRun { return f.runs }
func (f *fakeSource) Scores() *score.Cache      { return f.scores }

func newRun(name string, cartPole ...float64) *run.BenchmarkRun {
	cp := &run.TaskRun{EnvID: "CartPole-v0", BenchmarkID: "Two-v0"}
	for _, s := range cartPole {
		cp.Evaluations = append(cp.Evaluations, &run.Evaluation{ID: uuid.New(), EnvID: "CartPole-v0", Score: s})
	}
	return &run.BenchmarkRun{
		Metadata: run.Metadata{Username: "ada", Title: name, Commit: "3f2a9c1"},
		Name:     name,
		TaskRuns: []*run.TaskRun{cp, {EnvID: "Pendulum-v0", BenchmarkID: "Two-v0"}},
	}
}

func newSource(t *testing.T) *fakeSource {
	t.Helper()
	specs, err := benchmark.Parse([]byte(twoEnvBenchmark))
	require.NoError(t, err)

	src := &fakeSource{
		spec:   specs[0],
		runs:   []*run.BenchmarkRun{newRun("run-a", 10, 30), newRun("run-b", 80)},
		scores: score.NewCache("Two-v0"),
	}
	for _, r := range src.runs {
		for _, ev := range r.Evaluations() {
			src.scores.Record(r.Name, ev.EnvID, ev.ID, ev.Score)
		}
	}
	return src
}

func TestGenerate(t *testing.T) {
	r := Generate(newSource(t))

	assert.Equal(t, "Two-v0", r.Meta.BenchmarkID)
	assert.Equal(t, "Two", r.Meta.Benchmark)

	require.Len(t, r.Envs, 2)
	cp := r.Envs[0]
	assert.Equal(t, "CartPole-v0", cp.EnvID)
	assert.Equal(t, 2000, cp.MaxTimesteps)
	require.NotNil(t, cp.Best)
	assert.Equal(t, "run-b", cp.Best.RunName)
	assert.InDelta(t, 80.0, cp.Best.Score, 1e-9)
	require.NotNil(t, cp.Worst)
	assert.Equal(t, "run-a", cp.Worst.RunName)
	assert.InDelta(t, 10.0, cp.Worst.Score, 1e-9)

	assert.Nil(t, r.Envs[1].Best)
	assert.Nil(t, r.Envs[1].Worst)

	require.Len(t, r.Runs, 2)
	a := r.Runs[0]
	assert.Equal(t, 1, a.ScoredEnvs)
	assert.InDelta(t, 20.0, a.MeanScore, 1e-9)
	require.Len(t, a.Tasks, 2)
	assert.Equal(t, 2, a.Tasks[0].Evaluations)
	assert.InDelta(t, 10.0/70.0, a.Tasks[0].Normalized, 1e-9)
	assert.False(t, a.Tasks[1].Scored)

	assert.InDelta(t, 1.0, r.Runs[1].Tasks[0].Normalized, 1e-9)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(Generate(newSource(t)), &buf)
	out := buf.String()

	assert.Contains(t, out, "=== Two (Two-v0) ===")
	assert.Contains(t, out, "2 runs indexed from /data/bench")
	assert.Contains(t, out, "80.0000")
	assert.Contains(t, out, "20.0000")

	var pendulum string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Pendulum-v0") {
			pendulum = line
		}
	}
	assert.Contains(t, pendulum, "N/A")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(Generate(newSource(t)), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Two-v0", decoded.Meta.BenchmarkID)
	assert.Len(t, decoded.Runs, 2)
}
