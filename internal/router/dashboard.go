package router

import (
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/internal/apperr"
	"github.com/DjordjeVuckovic/bench-viewer/internal/report"
	"github.com/DjordjeVuckovic/bench-viewer/internal/run"
	"github.com/DjordjeVuckovic/bench-viewer/internal/score"
	"github.com/labstack/echo/v4"
)

type DashboardRouter struct {
	e      *echo.Echo
	viewer Viewer
}

func NewDashboardRouter(e *echo.Echo, viewer Viewer) *DashboardRouter {
	return &DashboardRouter{
		e:      e,
		viewer: viewer,
	}
}

func (r *DashboardRouter) Bind() {
	r.e.GET("/", r.indexHandler)
	r.e.GET("/benchmark_run/:name", r.runHandler)
	r.e.GET("/compare/:name/:other", r.compareHandler)
	r.e.GET("/benchmark_run/:name/tasks/:env/learning_curve.svg", r.learningCurveHandler)
}

// Page carries the fields the shared layout renders.
type Page struct {
	Title       string
	BenchmarkID string
	IndexedAt   time.Time
}

type indexPage struct {
	Page
	Description string
	Report      *report.Report
}

type runPage struct {
	Page
	Run    *run.BenchmarkRun
	Others []string
	Tasks  []taskView
}

type taskView struct {
	EnvID       string
	Mean        float64
	Best        *score.Bound
	Worst       *score.Bound
	CurveURL    string
	Evaluations []evaluationView
}

type evaluationView struct {
	ID        string
	Episodes  int
	Timesteps int
	Score     float64
}

type comparePage struct {
	Page
	Run   *run.BenchmarkRun
	Other *run.BenchmarkRun
	Tasks []compareView
}

type compareView struct {
	EnvID    string
	Left     report.TaskEntry
	Right    report.TaskEntry
	CurveURL string
}

func (r *DashboardRouter) newPage(title string) Page {
	return Page{
		Title:       title,
		BenchmarkID: r.viewer.BenchmarkID(),
		IndexedAt:   r.viewer.IndexedAt(),
	}
}

func (r *DashboardRouter) indexHandler(c echo.Context) error {
	spec := r.viewer.Spec()
	return c.Render(http.StatusOK, "benchmark.html", indexPage{
		Page:        r.newPage(spec.Name),
		Description: spec.Description,
		Report:      report.Generate(r.viewer),
	})
}

func (r *DashboardRouter) runHandler(c echo.Context) error {
	br, err := r.viewer.Run(c.Param("name"))
	if err != nil {
		return err
	}

	scores := r.viewer.Scores()
	p := runPage{Page: r.newPage(br.Name), Run: br}
	for _, other := range r.viewer.Runs() {
		if other.Name != br.Name {
			p.Others = append(p.Others, other.Name)
		}
	}

	for _, t := range br.TaskRuns {
		tv := taskView{EnvID: t.EnvID, CurveURL: curveURL(br.Name, t.EnvID, "")}
		tv.Mean, _ = t.MeanScore()
		if b, ok := scores.Max(t.EnvID); ok {
			tv.Best = &b
		}
		if b, ok := scores.Min(t.EnvID); ok {
			tv.Worst = &b
		}
		for _, ev := range t.Evaluations {
			tv.Evaluations = append(tv.Evaluations, evaluationView{
				ID:        ev.ID.String(),
				Episodes:  ev.EpisodeCount(),
				Timesteps: ev.TotalTimesteps(),
				Score:     ev.Score,
			})
		}
		p.Tasks = append(p.Tasks, tv)
	}

	return c.Render(http.StatusOK, "benchmark_run.html", p)
}

func (r *DashboardRouter) compareHandler(c echo.Context) error {
	if c.Param("name") == c.Param("other") {
		return apperr.NewValidation("cannot compare a run with itself")
	}
	left, err := r.viewer.Run(c.Param("name"))
	if err != nil {
		return err
	}
	right, err := r.viewer.Run(c.Param("other"))
	if err != nil {
		return err
	}

	p := comparePage{Page: r.newPage(left.Name + " vs " + right.Name), Run: left, Other: right}
	for _, t := range left.TaskRuns {
		cv := compareView{
			EnvID:    t.EnvID,
			Left:     taskEntry(t),
			CurveURL: curveURL(left.Name, t.EnvID, right.Name),
		}
		if other, ok := right.TaskRun(t.EnvID); ok {
			cv.Right = taskEntry(other)
		}
		p.Tasks = append(p.Tasks, cv)
	}

	return c.Render(http.StatusOK, "compare.html", p)
}

func (r *DashboardRouter) learningCurveHandler(c echo.Context) error {
	svg, err := r.viewer.RenderTaskRun(c.Param("name"), c.Param("env"), c.QueryParam("compare"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}

func taskEntry(t *run.TaskRun) report.TaskEntry {
	e := report.TaskEntry{EnvID: t.EnvID, Evaluations: len(t.Evaluations)}
	e.Score, e.Scored = t.MeanScore()
	return e
}
