package memory

import (
	"context"
	"sync"

	"github.com/ErolGelbul/imbd-tracker/movie"
)

// MovieRepository implements movie.Repository on a process-local map.
// Movies are kept in insertion order; title lookups scan every movie.
type MovieRepository struct {
	sync.RWMutex
	data  map[string]movie.Movie
	order []string
}

// NewMovieRepository creates an empty in-memory movie repository.
func NewMovieRepository() *MovieRepository {
	return &MovieRepository{data: map[string]movie.Movie{}}
}

func (r *MovieRepository) Create(_ context.Context, m movie.Movie) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.data[m.ID]; !ok {
		r.order = append(r.order, m.ID)
	}
	r.data[m.ID] = m
	return nil
}

func (r *MovieRepository) GetByID(_ context.Context, id string) (*movie.Movie, error) {
	r.RLock()
	defer r.RUnlock()
	m, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MovieRepository) GetByTitle(_ context.Context, title string, skip, limit int) ([]movie.Movie, error) {
	r.RLock()
	defer r.RUnlock()

	var matches []movie.Movie
	for _, id := range r.order {
		if m := r.data[id]; m.Title == title {
			matches = append(matches, m)
		}
	}

	if skip < 0 {
		skip = 0
	}
	if skip >= len(matches) {
		return []movie.Movie{}, nil
	}
	matches = matches[skip:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *MovieRepository) Update(_ context.Context, id string, changes movie.Changes) error {
	r.Lock()
	defer r.Unlock()
	m, ok := r.data[id]
	if !ok {
		return movie.ErrMovieNotFound(id)
	}

	updated, err := changes.Apply(m)
	if err != nil {
		return err
	}
	r.data[id] = updated
	return nil
}

func (r *MovieRepository) Delete(_ context.Context, id string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.data[id]; !ok {
		return nil
	}
	delete(r.data, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
