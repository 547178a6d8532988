package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErolGelbul/imbd-tracker/httpserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRoutes(t *testing.T) {
	t.Run("should serve request metrics when enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.MetricsEnabled = true
		server := httpserver.Default(cfg)
		require.NotNil(t, server.Metrics)

		health := httptest.NewRecorder()
		server.Router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		require.Equal(t, http.StatusOK, health.Code)

		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "movie_tracker_requests_total")
		assert.Contains(t, rec.Body.String(), `url="/healthcheck"`)
		assert.NotContains(t, rec.Body.String(), `url="/metrics"`)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("should keep servers independent", func(t *testing.T) {
		cfg := testConfig()
		cfg.MetricsEnabled = true

		assert.NotPanics(t, func() {
			httpserver.Default(cfg)
			httpserver.Default(cfg)
		})
	})

	t.Run("should not expose metrics by default", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Nil(t, server.Metrics)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
