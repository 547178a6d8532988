package httpserver

import (
	"github.com/ErolGelbul/imbd-tracker/movie"
)

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,notblank,min=4"`
	Description string `json:"description" validate:"required,notblank,min=4"`
	ReleaseYear int    `json:"release_year" validate:"required,gte=1900"`
	Watched     bool   `json:"watched"`
}

func (r CreateMovieRequest) ToNewMovie() movie.NewMovie {
	return movie.NewMovie{
		Title:       r.Title,
		Description: r.Description,
		ReleaseYear: r.ReleaseYear,
		Watched:     r.Watched,
	}
}

type SearchMoviesRequest struct {
	Title string `query:"title" validate:"required,min=3"`
	Skip  int    `query:"skip" validate:"gte=0"`
	Limit int    `query:"limit" validate:"gte=0,lte=1000"`
}

// UpdateMovieRequest is a sparse update; nil fields are left untouched.
type UpdateMovieRequest struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ReleaseYear *int    `json:"release_year"`
	Watched     *bool   `json:"watched"`
}

func (r UpdateMovieRequest) ToChanges() movie.Changes {
	changes := movie.Changes{}
	if r.ID != nil {
		changes[movie.FieldID] = *r.ID
	}
	if r.Title != nil {
		changes[movie.FieldTitle] = *r.Title
	}
	if r.Description != nil {
		changes[movie.FieldDescription] = *r.Description
	}
	if r.ReleaseYear != nil {
		changes[movie.FieldReleaseYear] = *r.ReleaseYear
	}
	if r.Watched != nil {
		changes[movie.FieldWatched] = *r.Watched
	}
	return changes
}
