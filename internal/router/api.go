package router

import (
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/internal/report"
	"github.com/labstack/echo/v4"
)

type APIRouter struct {
	e      *echo.Echo
	viewer Viewer
}

func NewAPIRouter(e *echo.Echo, viewer Viewer) *APIRouter {
	return &APIRouter{
		e:      e,
		viewer: viewer,
	}
}

func (r *APIRouter) Bind() {
	g := r.e.Group("/api")
	g.GET("/runs", r.listRunsHandler)
	g.GET("/runs/:name", r.getRunHandler)
	g.GET("/scores", r.scoresHandler)
	g.POST("/refresh", r.refreshHandler)
}

type RefreshResponse struct {
	BenchmarkID string    `json:"benchmark_id"`
	Runs        int       `json:"runs"`
	IndexedAt   time.Time `json:"indexed_at"`
}

// listRunsHandler godoc
// @Summary List benchmark runs
// @Description Lists every indexed benchmark run with its mean score per environment
// @Tags runs
// @Produce json
// @Success 200 {array} report.RunSummary
// @Router /api/runs [get]
func (r *APIRouter) listRunsHandler(c echo.Context) error {
	runs := report.Generate(r.viewer).Runs
	if runs == nil {
		runs = []report.RunSummary{}
	}
	return c.JSON(http.StatusOK, runs)
}

// getRunHandler godoc
// @Summary Get a benchmark run
// @Description Returns the run metadata with every evaluation and its episodes
// @Tags runs
// @Produce json
// @Param name path string true "Run name"
// @Success 200 {object} run.BenchmarkRun
// @Failure 404 {object} map[string]string
// @Router /api/runs/{name} [get]
func (r *APIRouter) getRunHandler(c echo.Context) error {
	br, err := r.viewer.Run(c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, br)
}

// scoresHandler godoc
// @Summary Score report
// @Description Best and worst score per environment and mean score per run
// @Tags scores
// @Produce json
// @Success 200 {object} report.Report
// @Router /api/scores [get]
func (r *APIRouter) scoresHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, report.Generate(r.viewer))
}

// refreshHandler godoc
// @Summary Rebuild the run index
// @Description Rescans the runs directory and records the scores of every evaluation
// @Tags runs
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 500 {object} map[string]string
// @Router /api/refresh [post]
func (r *APIRouter) refreshHandler(c echo.Context) error {
	if err := r.viewer.Refresh(); err != nil {
		return err
	}

	resp := RefreshResponse{
		BenchmarkID: r.viewer.BenchmarkID(),
		Runs:        len(r.viewer.Runs()),
		IndexedAt:   r.viewer.IndexedAt(),
	}
	// the refresh button on the HTML pages posts a form
	if c.Request().Header.Get(echo.HeaderContentType) == echo.MIMEApplicationForm {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusOK, resp)
}
