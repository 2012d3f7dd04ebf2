package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/bench-viewer/internal/apperr"
	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/dashboard"
	"github.com/DjordjeVuckovic/bench-viewer/internal/report"
	"github.com/DjordjeVuckovic/bench-viewer/internal/run"
	testutil "github.com/DjordjeVuckovic/bench-viewer/pkg/testing"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRun(t *testing.T, dataDir, name string, reward float64) {
	t.Helper()
	runDir := filepath.Join(dataDir, dashboard.RunsDir, name)
	testutil.WriteRunMetadata(t, runDir, testutil.CompleteRunMetadata(name))
	testutil.WriteEvaluation(t, runDir, "cartpole-0", "CartPole-v0", testutil.UniformStats(3, 10, reward))
}

func newTestServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()

	dataDir := t.TempDir()
	testutil.WriteBenchmarkMetadata(t, dataDir, "ClassicControl2-v0")
	writeRun(t, dataDir, "run-a", 50)
	writeRun(t, dataDir, "run-b", 150)

	registry, err := benchmark.DefaultRegistry()
	require.NoError(t, err)
	d, err := dashboard.New(dashboard.Config{DataPath: dataDir}, registry,
		dashboard.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	require.NoError(t, d.Refresh())

	renderer, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewDashboardRouter(e, d).Bind()
	NewAPIRouter(e, d).Bind()

	return e, dataDir
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDashboardRouter_Pages(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		name     string
		target   string
		status   int
		contains []string
	}{
		{
			name:     "index",
			target:   "/",
			status:   http.StatusOK,
			contains: []string{"ClassicControl2", "run-a", "run-b", "CartPole-v0", "150"},
		},
		{
			name:     "benchmark run",
			target:   "/benchmark_run/run-a",
			status:   http.StatusOK,
			contains: []string{"run-a", "3f2a9c1", "/benchmark_run/run-a/tasks/CartPole-v0/learning_curve.svg", "No evaluations."},
		},
		{
			name:     "compare",
			target:   "/compare/run-a/run-b",
			status:   http.StatusOK,
			contains: []string{"run-a vs run-b", "learning_curve.svg?compare=run-b"},
		},
		{
			name:   "unknown run",
			target: "/benchmark_run/missing",
			status: http.StatusNotFound,
		},
		{
			name:   "compare with itself",
			target: "/compare/run-a/run-a",
			status: http.StatusBadRequest,
		},
		{
			name:   "compare with unknown run",
			target: "/compare/run-a/missing",
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestDashboardRouter_LearningCurve(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/benchmark_run/run-a/tasks/CartPole-v0/learning_curve.svg?compare=run-b")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = do(e, http.MethodGet, "/benchmark_run/run-a/tasks/Hopper-v1/learning_curve.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIRouter_Runs(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []report.RunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "run-a", runs[0].Name)

	rec = do(e, http.MethodGet, "/api/runs/run-b")
	require.Equal(t, http.StatusOK, rec.Code)

	var br run.BenchmarkRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &br))
	assert.Equal(t, "run-b", br.Name)
	assert.Equal(t, "ada", br.Username)
	require.Len(t, br.TaskRuns, 2)
	assert.Len(t, br.TaskRuns[0].Evaluations, 1)

	rec = do(e, http.MethodGet, "/api/runs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIRouter_Scores(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/scores")
	require.Equal(t, http.StatusOK, rec.Code)

	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, "ClassicControl2-v0", r.Meta.BenchmarkID)
	require.NotEmpty(t, r.Envs)
	require.NotNil(t, r.Envs[0].Best)
	assert.Equal(t, "run-b", r.Envs[0].Best.RunName)
}

func TestAPIRouter_Refresh(t *testing.T) {
	e, dataDir := newTestServer(t)
	writeRun(t, dataDir, "run-c", 10)

	rec := do(e, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Runs)
	assert.False(t, resp.IndexedAt.IsZero())

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	form := httptest.NewRecorder()
	e.ServeHTTP(form, req)
	assert.Equal(t, http.StatusSeeOther, form.Code)
	assert.Equal(t, "/", form.Header().Get(echo.HeaderLocation))
}

func TestCurveURL(t *testing.T) {
	assert.Equal(t, "/benchmark_run/run%20a/tasks/CartPole-v0/learning_curve.svg", curveURL("run a", "CartPole-v0", ""))
	assert.Equal(t, "/benchmark_run/a/tasks/E/learning_curve.svg?compare=b+c", curveURL("a", "E", "b c"))
}
