package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ErolGelbul/imbd-tracker/errs"
	"github.com/ErolGelbul/imbd-tracker/movie"
	"github.com/ErolGelbul/imbd-tracker/pkg/jwt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.Use(s.requireMovieService)

	var write []echo.MiddlewareFunc
	if s.JWTSecret != "" {
		tokens := jwt.NewProvider(s.JWTSecret, 0)
		write = append(write, echojwt.WithConfig(echojwt.Config{
			// Only access tokens with a subject may write; the stored user is that subject.
			ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
				return tokens.Parse(auth)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return errs.Errorf(errs.EUNAUTHORIZED, "invalid token")
			},
		}))
	}

	g.GET("", s.handleSearchMovies)
	g.GET("/:id", s.handleGetMovie)
	g.POST("", s.handleAddMovie, write...)
	g.PATCH("/:id", s.handleUpdateMovie, write...)
	g.DELETE("/:id", s.handleDeleteMovie, write...)
}

func (s *Server) requireMovieService(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.MovieService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
		}
		return next(c)
	}
}

// handleAddMovie godoc
// @Summary Create Movie
// @Description Add a movie to the watch list
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} MovieCreatedResponse
// @Failure 422 {object} APIResponse
// @Router /api/v1/movies [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	var req CreateMovieRequest

	if err := c.Bind(&req); err != nil {
		return unprocessable(err)
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(err)
	}

	id, err := s.MovieService.AddMovie(c.Request().Context(), req.ToNewMovie())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MovieCreatedResponse{ID: id})
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Get a movie by id
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 404 {object} APIResponse
// @Router /api/v1/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	m, err := s.MovieService.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description List movies whose title matches exactly
// @Tags movies
// @Produce json
// @Param title query string true "Movie title"
// @Param skip query int false "Number of movies to skip"
// @Param limit query int false "Max results (0-1000), default 1000"
// @Success 200 {array} movie.Movie
// @Failure 422 {object} APIResponse
// @Router /api/v1/movies [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	req := SearchMoviesRequest{Limit: movie.DefaultLimit}

	if err := c.Bind(&req); err != nil {
		return unprocessable(err)
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(err)
	}

	movies, err := s.MovieService.SearchMovies(c.Request().Context(), req.Title, req.Skip, req.Limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movies)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Overwrite the given fields of a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to update"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} APIResponse
// @Router /api/v1/movies/{id} [patch]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	var req UpdateMovieRequest

	if err := c.Bind(&req); err != nil {
		return unprocessable(err)
	}

	err := s.MovieService.UpdateMovie(c.Request().Context(), c.Param("id"), req.ToChanges())
	if err != nil {
		return err
	}

	return writeMessage(c, http.StatusOK, "Movie updated.")
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Delete a movie, succeeds for unknown ids too
// @Tags movies
// @Param id path string true "Movie ID"
// @Success 204
// @Router /api/v1/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if err := s.MovieService.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func unprocessable(err error) error {
	msg := errs.ErrorMessage(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, msg).SetInternal(err)
}
