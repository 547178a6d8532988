package httpserver

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	metricsPath      = "/metrics"
	metricsSubsystem = "movie_tracker"
)

// NewMetricsRegistry returns a registry holding the Go runtime and process
// collectors. Each server gets its own so request metrics never collide.
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: s.Metrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath || middleware.DefaultSkipper(c)
		},
	})
}

func (s *Server) RegisterMetricsRoutes() {
	if s.Metrics == nil {
		return
	}
	s.Router.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics,
	}))
}
