package movie

import (
	"errors"

	"github.com/ErolGelbul/imbd-tracker/errs"
)

var (
	ErrInvalidQuery = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrImmutableID  = errs.Errorf(errs.EINVALID, "can't update movie id.")
)

// Movie is a tracked film. ID is assigned by the caller before the movie is
// stored and never changes afterwards.
type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Watched     bool   `json:"watched"`
}

// Field names a movie attribute as it appears in a sparse update.
type Field string

const (
	FieldID          Field = "id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldReleaseYear Field = "release_year"
	FieldWatched     Field = "watched"
)

// Changes is a sparse update: only the listed fields are overwritten.
// Keys that do not name an updatable field are ignored.
type Changes map[Field]any

// Apply returns a copy of m with the changes applied. It fails without
// touching anything when the changes try to rewrite the id or carry a value
// of the wrong type.
func (c Changes) Apply(m Movie) (Movie, error) {
	if err := c.Validate(); err != nil {
		return Movie{}, err
	}

	for field, value := range c {
		switch field {
		case FieldTitle:
			m.Title = value.(string)
		case FieldDescription:
			m.Description = value.(string)
		case FieldReleaseYear:
			m.ReleaseYear = value.(int)
		case FieldWatched:
			m.Watched = value.(bool)
		}
	}
	return m, nil
}

// Validate rejects an id rewrite and mistyped values for known fields.
func (c Changes) Validate() error {
	if _, ok := c[FieldID]; ok {
		return ErrImmutableID
	}

	for field, value := range c {
		var ok bool
		switch field {
		case FieldTitle, FieldDescription:
			_, ok = value.(string)
		case FieldReleaseYear:
			_, ok = value.(int)
		case FieldWatched:
			_, ok = value.(bool)
		default:
			ok = true
		}
		if !ok {
			return ErrInvalidChange(field)
		}
	}
	return nil
}

// Known drops keys that do not name an updatable field.
func (c Changes) Known() Changes {
	known := make(Changes, len(c))
	for field, value := range c {
		switch field {
		case FieldTitle, FieldDescription, FieldReleaseYear, FieldWatched:
			known[field] = value
		}
	}
	return known
}

// ErrMovieNotFound is returned by Repository.Update when no movie has the id.
func ErrMovieNotFound(id string) error {
	return errs.Errorf(errs.EINVALID, "movie: %s not found", id)
}

// ErrInvalidChange is returned when a change value has the wrong type.
func ErrInvalidChange(field Field) error {
	return errs.Errorf(errs.EINVALID, "movie: invalid value for %s", field)
}

// IsRepositoryError reports whether err is a rejected repository operation,
// as opposed to a storage failure.
func IsRepositoryError(err error) bool {
	var e *errs.Error
	return errors.As(err, &e) && e.Code == errs.EINVALID
}
