package router

import (
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/run"
	"github.com/DjordjeVuckovic/bench-viewer/internal/score"
)

// Viewer is the read side of the dashboard plus its refresh trigger.
type Viewer interface {
	BenchmarkID() string
	Spec() *benchmark.Spec
	DataPath() string
	IndexedAt() time.Time
	Runs() []*run.BenchmarkRun
	Run(name string) (*run.BenchmarkRun, error)
	Scores() *score.Cache
	Refresh() error
	RenderTaskRun(runName, envID, otherRun string) ([]byte, error)
}
