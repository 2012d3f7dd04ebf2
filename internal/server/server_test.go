package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgserver "github.com/DjordjeVuckovic/bench-viewer/pkg/server"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealth bool

func (s stubHealth) Healthy(context.Context) bool { return bool(s) }

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig(viper.New())
		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.False(t, cfg.UseHttp2)
		assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
		assert.Equal(t, ":5000", cfg.Address())
	})

	t.Run("explicit values", func(t *testing.T) {
		v := viper.New()
		v.Set(KeyPort, "8081")
		v.Set(KeyHTTP2, true)
		v.Set(KeyCorsOrigins, "http://localhost:3000, ,http://example.com")

		cfg, err := LoadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "8081", cfg.Port)
		assert.True(t, cfg.UseHttp2)
		assert.Equal(t, []string{"http://localhost:3000", "http://example.com"}, cfg.CorsOrigins)
	})

	for _, port := range []string{"abc", "0", "70000"} {
		t.Run("invalid port "+port, func(t *testing.T) {
			v := viper.New()
			v.Set(KeyPort, port)
			_, err := LoadConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestServer_HealthChecks(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		status  int
	}{
		{"healthy", true, http.StatusOK},
		{"not indexed", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&Config{Port: DefaultPort}, stubHealth(tt.healthy)).
				SetupErrorHandler().
				SetupHealthChecks("/health")
			defer s.Stop()

			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServer_OpenApi(t *testing.T) {
	s := New(&Config{Port: DefaultPort}, pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupOpenApi("/swagger/*")
	defer s.Stop()

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/runs/{name}")
}
