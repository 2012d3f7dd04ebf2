// Package dashboard indexes the benchmark runs under a data directory and serves
// read-only views of them, their scores and their learning curves.
package dashboard

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/internal/apperr"
	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/curve"
	"github.com/DjordjeVuckovic/bench-viewer/internal/plot"
	"github.com/DjordjeVuckovic/bench-viewer/internal/run"
	"github.com/DjordjeVuckovic/bench-viewer/internal/score"
	"gopkg.in/yaml.v3"
)

const (
	BenchmarkMetadataFile = "benchmark_metadata.yaml"
	RunsDir               = "runs"
)

type BenchmarkMetadata struct {
	ID string `yaml:"id"`
}

// LoadBenchmarkMetadata reads the benchmark id declared at the root of the data directory.
func LoadBenchmarkMetadata(dataPath string) (*BenchmarkMetadata, error) {
	path := filepath.Join(dataPath, BenchmarkMetadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmark metadata: %w", err)
	}
	var md BenchmarkMetadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse benchmark metadata %s: %w", path, err)
	}
	if md.ID == "" {
		return nil, fmt.Errorf("benchmark metadata %s has no id", path)
	}
	return &md, nil
}

type Config struct {
	DataPath string
}

// Dashboard serves benchmark runs from an in-memory index. The index is built by
// Refresh; views never touch the disk.
type Dashboard struct {
	dataPath string
	runsDir  string
	spec     *benchmark.Spec
	loader   *run.Loader
	scores   *score.Cache
	logger   *slog.Logger

	mu        sync.RWMutex
	runs      []*run.BenchmarkRun
	byName    map[string]*run.BenchmarkRun
	indexedAt time.Time
}

type Option func(*Dashboard)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

// WithScoreCache shares an existing score cache instead of creating one.
func WithScoreCache(c *score.Cache) Option {
	return func(d *Dashboard) {
		d.scores = c
	}
}

// New resolves the benchmark declared under cfg.DataPath. It does not load any run;
// call Refresh before serving.
func New(cfg Config, registry *benchmark.Registry, opts ...Option) (*Dashboard, error) {
	md, err := LoadBenchmarkMetadata(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	spec, err := registry.Spec(md.ID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		dataPath: cfg.DataPath,
		runsDir:  filepath.Join(cfg.DataPath, RunsDir),
		spec:     spec,
		logger:   slog.Default(),
		byName:   make(map[string]*run.BenchmarkRun),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.scores == nil {
		d.scores = score.NewCache(spec.ID)
	}
	d.loader = run.NewLoader(spec, run.WithLogger(d.logger))

	return d, nil
}

// Refresh rescans the runs directory, records every evaluation score in the score cache
// and replaces the index. On error the previous index is kept.
func (d *Dashboard) Refresh() error {
	started := time.Now()
	d.logger.Info("Loading benchmark runs", "path", d.runsDir)

	runs, err := d.loader.LoadBenchmarkRuns(d.runsDir)
	if err != nil {
		return err
	}
	d.logger.Info("Loaded benchmark runs", "count", len(runs), "elapsed", time.Since(started))

	scoringStarted := time.Now()
	for _, r := range runs {
		for _, t := range r.TaskRuns {
			for _, ev := range t.Evaluations {
				d.scores.Record(r.Name, ev.EnvID, ev.ID, ev.Score)
			}
		}
		d.logger.Debug("Computed scores", "run", r.Name)
	}
	d.logger.Info("Computed scores for benchmark runs", "count", len(runs), "elapsed", time.Since(scoringStarted))

	byName := make(map[string]*run.BenchmarkRun, len(runs))
	for _, r := range runs {
		byName[r.Name] = r
	}

	d.mu.Lock()
	d.runs = runs
	d.byName = byName
	d.indexedAt = time.Now()
	d.mu.Unlock()

	return nil
}

func (d *Dashboard) Runs() []*run.BenchmarkRun {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*run.BenchmarkRun, len(d.runs))
	copy(out, d.runs)
	return out
}

func (d *Dashboard) Run(name string) (*run.BenchmarkRun, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.byName[name]
	if !ok {
		return nil, apperr.NewNotFound("benchmark run", name)
	}
	return r, nil
}

// Indexed reports whether Refresh has completed at least once.
func (d *Dashboard) Indexed() bool {
	return !d.IndexedAt().IsZero()
}

func (d *Dashboard) IndexedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexedAt
}

func (d *Dashboard) Scores() *score.Cache {
	return d.scores
}

func (d *Dashboard) Spec() *benchmark.Spec {
	return d.spec
}

func (d *Dashboard) BenchmarkID() string {
	return d.spec.ID
}

func (d *Dashboard) DataPath() string {
	return d.dataPath
}

// RenderLearningCurve smooths every evaluation of task, followed by those of other when
// it is not nil, and draws them on one SVG chart spanning the task's timestep budget.
func (d *Dashboard) RenderLearningCurve(task, other *run.TaskRun) ([]byte, error) {
	spec, err := d.spec.TaskSpec(task.EnvID)
	if err != nil {
		return nil, err
	}

	evaluations := task.Evaluations
	if other != nil {
		evaluations = append(append([]*run.Evaluation{}, task.Evaluations...), other.Evaluations...)
	}

	curves := make([]curve.Curve, 0, len(evaluations))
	for _, ev := range evaluations {
		curves = append(curves, curve.Smooth(ev.EpisodeRewards, ev.EpisodeLengths, float64(spec.MaxTimesteps)))
	}

	return plot.LearningCurvesSVG(curves)
}

// RenderTaskRun resolves the named runs and renders envID's learning curves. otherRun
// may be empty.
func (d *Dashboard) RenderTaskRun(runName, envID, otherRun string) ([]byte, error) {
	if otherRun != "" && otherRun == runName {
		return nil, apperr.NewValidation("cannot compare a run with itself")
	}
	task, err := d.taskRun(runName, envID)
	if err != nil {
		return nil, err
	}

	var other *run.TaskRun
	if otherRun != "" {
		other, err = d.taskRun(otherRun, envID)
		if err != nil {
			return nil, err
		}
	}

	return d.RenderLearningCurve(task, other)
}

func (d *Dashboard) taskRun(runName, envID string) (*run.TaskRun, error) {
	r, err := d.Run(runName)
	if err != nil {
		return nil, err
	}
	t, ok := r.TaskRun(envID)
	if !ok {
		return nil, apperr.NewNotFound("task run", runName+"/"+envID)
	}
	return t, nil
}
