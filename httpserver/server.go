package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ErolGelbul/imbd-tracker/errs"
	"github.com/ErolGelbul/imbd-tracker/movie"
	"github.com/ErolGelbul/imbd-tracker/pkg/config"
	"github.com/ErolGelbul/imbd-tracker/pkg/logger"
	"github.com/ErolGelbul/imbd-tracker/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultPort = 8080

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Logger *zap.SugaredLogger

	MovieService movie.Service

	// StorageBackend names the movie repository behind MovieService
	StorageBackend string

	// JWTSecret protects the write routes when non-empty
	JWTSecret string

	// Metrics collects request metrics served on /metrics when non-nil
	Metrics *prometheus.Registry
}

func Default(cfg *config.Config) *Server {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	s := Server{
		Router:         echo.New(),
		Addr:           fmt.Sprintf(":%d", port),
		AllowOrigins:   allowOrigins(cfg.AllowOrigins),
		Logger:         logger.NOOPLogger,
		StorageBackend: cfg.Storage.Backend,
		JWTSecret:      cfg.Auth.JWTSecret,
	}

	if cfg.MetricsEnabled {
		s.Metrics = NewMetricsRegistry()
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterMovieRoutes(s.Router.Group("/api/v1/movies"))
	return &s
}

func allowOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"*"}
	}

	origins := make([]string, 0)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Pre(middleware.RemoveTrailingSlash())
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	if s.Metrics != nil {
		s.Router.Use(s.metricsMiddleware())
	}
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// customHTTPErrorHandler maps application errors to appropriate HTTP status codes
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	s.logError(c, err, code)

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = writeError(c, code, message, "", err)
	}
	if err != nil {
		s.Logger.Errorw("write error response", zap.Error(err))
	}
}

func (s *Server) logError(c echo.Context, err error, status int) {
	if status < http.StatusInternalServerError {
		s.Logger.Debugw(err.Error(),
			zap.Int("status", status),
			zap.String("request_id", s.requestID(c)),
		)
		return
	}

	s.Logger.Errorw(err.Error(),
		zap.Int("status", status),
		zap.String("request_id", s.requestID(c)),
	)
	sentry.WithContext(c).
		WithTags(map[string]string{"storage": s.StorageBackend}).
		Error(err)
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
