package report

import (
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/run"
	"github.com/DjordjeVuckovic/bench-viewer/internal/score"
)

// Source is the indexed view a report is generated from.
type Source interface {
	Spec() *benchmark.Spec
	DataPath() string
	IndexedAt() time.Time
	Runs() []*run.BenchmarkRun
	Scores() *score.Cache
}

func Generate(src Source) *Report {
	spec := src.Spec()
	scores := src.Scores()

	r := &Report{
		Meta: ReportMeta{
			BenchmarkID: spec.ID,
			Benchmark:   spec.Name,
			DataPath:    src.DataPath(),
			Timestamp:   time.Now(),
			IndexedAt:   src.IndexedAt(),
			Environment: NewEnvironmentInfo(),
		},
	}

	for _, envID := range spec.EnvIDs() {
		es := EnvSummary{EnvID: envID}
		if task, err := spec.TaskSpec(envID); err == nil {
			es.MaxTimesteps = task.MaxTimesteps
		}
		if b, ok := scores.Max(envID); ok {
			es.Best = fromBound(b)
		}
		if b, ok := scores.Min(envID); ok {
			es.Worst = fromBound(b)
		}
		r.Envs = append(r.Envs, es)
	}

	envIDs := spec.EnvIDs()
	for _, br := range src.Runs() {
		r.Runs = append(r.Runs, summarizeRun(br, envIDs, scores))
	}

	return r
}

// summarizeRun lists the run's tasks in envIDs order so rows line up with Report.Envs.
func summarizeRun(br *run.BenchmarkRun, envIDs []string, scores *score.Cache) RunSummary {
	rs := RunSummary{
		Name:     br.Name,
		Title:    br.Title,
		Username: br.Username,
		Commit:   br.Commit,
	}

	var total float64
	for _, envID := range envIDs {
		entry := TaskEntry{EnvID: envID}
		t, ok := br.TaskRun(envID)
		if !ok {
			rs.Tasks = append(rs.Tasks, entry)
			continue
		}
		entry.Evaluations = len(t.Evaluations)
		if mean, ok := t.MeanScore(); ok {
			entry.Score = mean
			entry.Scored = true
			entry.Normalized, _ = scores.Normalize(envID, mean)
			total += mean
			rs.ScoredEnvs++
		}
		rs.Tasks = append(rs.Tasks, entry)
	}
	if rs.ScoredEnvs > 0 {
		rs.MeanScore = total / float64(rs.ScoredEnvs)
	}

	return rs
}

func fromBound(b score.Bound) *ScoreEntry {
	return &ScoreEntry{RunName: b.RunName, Score: b.Score, CachedAt: b.CachedAt}
}
