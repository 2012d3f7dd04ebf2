// Package run loads benchmark runs from disk: one directory per run, holding a metadata
// file and one gym monitor training directory per evaluation.
package run

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/monitor"
	"github.com/DjordjeVuckovic/bench-viewer/internal/score"
	"github.com/google/uuid"
)

// evaluationNamespace derives stable evaluation ids from training directory paths.
var evaluationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bench-viewer/evaluation"))

type Loader struct {
	spec   *benchmark.Spec
	logger *slog.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(spec *benchmark.Spec, opts ...LoaderOption) *Loader {
	l := &Loader{
		spec:   spec,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Spec() *benchmark.Spec {
	return l.spec
}

// LoadEvaluation reads and scores the training directory dir.
func (l *Loader) LoadEvaluation(dir string) (*Evaluation, error) {
	results, err := monitor.LoadResults(dir)
	if err != nil {
		return nil, err
	}

	envID := results.EnvInfo.EnvID
	scored, err := l.spec.ScoreEvaluation(envID, benchmark.Episodes{
		DataSources:            results.DataSources,
		InitialResetTimestamps: results.InitialResetTimestamps,
		Lengths:                results.EpisodeLengths,
		Rewards:                results.EpisodeRewards,
		Types:                  results.EpisodeTypes,
		Timestamps:             results.Timestamps,
	})
	if err != nil {
		return nil, fmt.Errorf("score evaluation %s: %w", dir, err)
	}

	// The scorer returns one vector per task declared for the environment; only the
	// first is used.
	var s float64
	if len(scored.Lengths) > 0 && len(scored.Rewards) > 0 {
		s = score.MeanAreaUnderCurve(scored.Lengths[0], scored.Rewards[0])
	}

	return &Evaluation{
		ID:                     uuid.NewSHA1(evaluationNamespace, []byte(filepath.Clean(dir))),
		Dir:                    dir,
		EnvID:                  envID,
		Score:                  s,
		EpisodeRewards:         results.EpisodeRewards,
		EpisodeLengths:         results.EpisodeLengths,
		EpisodeTypes:           results.EpisodeTypes,
		Timestamps:             results.Timestamps,
		InitialResetTimestamps: results.InitialResetTimestamps,
		DataSources:            results.DataSources,
	}, nil
}

// LoadEvaluations loads every <path>/*/gym training directory. Directories without a
// manifest or with unreadable monitor files are skipped and reported as warnings.
func (l *Loader) LoadEvaluations(path string) ([]*Evaluation, error) {
	dirs, err := filepath.Glob(filepath.Join(path, "*", "gym"))
	if err != nil {
		return nil, fmt.Errorf("list training dirs: %w", err)
	}
	sort.Strings(dirs)

	var (
		evaluations []*Evaluation
		missing     int
		unloadable  int
	)
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}

		manifests, err := monitor.DetectManifests(dir)
		if err != nil || len(manifests) == 0 {
			missing++
			continue
		}

		ev, err := l.LoadEvaluation(dir)
		if err != nil {
			if errors.Is(err, benchmark.ErrUnknownEnv) {
				return nil, err
			}
			l.logger.Debug("Failed to load evaluation", "dir", dir, "error", err)
			unloadable++
			continue
		}
		evaluations = append(evaluations, ev)
	}

	if missing > 0 {
		l.logger.Warn("Could not load evaluations due to missing manifests", "count", missing, "path", path)
	}
	if unloadable > 0 {
		l.logger.Warn("Monitor results failed to load for evaluations", "count", unloadable, "path", path)
	}

	return evaluations, nil
}

// LoadTaskRuns groups the evaluations under path into one TaskRun per environment of
// the benchmark, sorted by env id.
func (l *Loader) LoadTaskRuns(path string) ([]*TaskRun, error) {
	byEnv := make(map[string]*TaskRun)
	for _, envID := range l.spec.EnvIDs() {
		byEnv[envID] = &TaskRun{
			EnvID:       envID,
			BenchmarkID: l.spec.ID,
			Evaluations: []*Evaluation{},
		}
	}

	evaluations, err := l.LoadEvaluations(path)
	if err != nil {
		return nil, err
	}
	for _, ev := range evaluations {
		byEnv[ev.EnvID].Evaluations = append(byEnv[ev.EnvID].Evaluations, ev)
	}

	taskRuns := make([]*TaskRun, 0, len(byEnv))
	for _, t := range byEnv {
		taskRuns = append(taskRuns, t)
	}
	sort.Slice(taskRuns, func(i, j int) bool { return taskRuns[i].EnvID < taskRuns[j].EnvID })
	return taskRuns, nil
}

// LoadBenchmarkRun loads the run directory at path. A metadata file missing any field
// fails the whole run.
func (l *Loader) LoadBenchmarkRun(path string) (*BenchmarkRun, error) {
	taskRuns, err := l.LoadTaskRuns(path)
	if err != nil {
		return nil, fmt.Errorf("load task runs for %s: %w", path, err)
	}

	metadataFile := filepath.Join(path, MetadataFile)
	md, err := LoadMetadata(metadataFile)
	if err != nil {
		var mfe *MissingFieldError
		if errors.As(err, &mfe) {
			l.logger.Error("Missing key in metadata file", "key", mfe.Key, "file", mfe.File)
		}
		return nil, err
	}

	return &BenchmarkRun{
		Metadata: *md,
		Name:     filepath.Base(path),
		Path:     path,
		TaskRuns: taskRuns,
	}, nil
}

// LoadBenchmarkRuns loads every run directory directly under runsDir, sorted by name.
func (l *Loader) LoadBenchmarkRuns(runsDir string) ([]*BenchmarkRun, error) {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return nil, fmt.Errorf("read runs dir: %w", err)
	}

	var runs []*BenchmarkRun
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		r, err := l.LoadBenchmarkRun(filepath.Join(runsDir, e.Name()))
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}
