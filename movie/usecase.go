package movie

import (
	"context"
	"unicode/utf8"

	"github.com/ErolGelbul/imbd-tracker/errs"

	"github.com/google/uuid"
)

// MinQueryLength is the shortest title accepted by SearchMovies.
const MinQueryLength = 3

type Service interface {
	AddMovie(ctx context.Context, m NewMovie) (string, error)
	GetMovie(ctx context.Context, id string) (Movie, error)
	SearchMovies(ctx context.Context, title string, skip, limit int) ([]Movie, error)
	UpdateMovie(ctx context.Context, id string, changes Changes) error
	DeleteMovie(ctx context.Context, id string) error
}

// NewMovie holds the caller-supplied attributes of a movie that has no id yet.
type NewMovie struct {
	Title       string
	Description string
	ReleaseYear int
	Watched     bool
}

type Usecase struct {
	r     Repository
	newID func() string
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{
		r:     r,
		newID: uuid.NewString,
	}
}

func (uc *Usecase) AddMovie(ctx context.Context, m NewMovie) (string, error) {
	id := uc.newID()
	err := uc.r.Create(ctx, Movie{
		ID:          id,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Watched:     m.Watched,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id string) (Movie, error) {
	m, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Movie{}, err
	}
	if m == nil {
		return Movie{}, errs.Errorf(errs.ENOTFOUND, "Movie with id %s is not found.", id)
	}
	return *m, nil
}

func (uc *Usecase) SearchMovies(ctx context.Context, title string, skip, limit int) ([]Movie, error) {
	// Counted like the request validator: runes, surrounding spaces included.
	if utf8.RuneCountInString(title) < MinQueryLength {
		return nil, ErrInvalidQuery
	}
	if skip < 0 || limit < 0 || limit > DefaultLimit {
		return nil, ErrInvalidQuery
	}

	movies, err := uc.r.GetByTitle(ctx, title, skip, limit)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id string, changes Changes) error {
	return uc.r.Update(ctx, id, changes)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id string) error {
	return uc.r.Delete(ctx, id)
}
