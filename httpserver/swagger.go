package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const swaggerIndex = "/swagger/index.html"

func (s *Server) RegisterSwaggerRoutes() {
	// RemoveTrailingSlash turns "/swagger/" into "/swagger", which the wildcard route never sees.
	s.Router.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, swaggerIndex)
	})
	s.Router.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.DocExpansion("list"),
	))
}
