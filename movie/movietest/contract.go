// Package movietest holds the behaviour every movie.Repository must share.
package movietest

import (
	"context"
	"testing"

	"github.com/ErolGelbul/imbd-tracker/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RepositoryFactory returns an empty repository for a single subtest.
type RepositoryFactory func(t *testing.T) movie.Repository

// RunRepositoryContract runs the shared repository behaviour against repositories built by newRepo.
func RunRepositoryContract(t *testing.T, newRepo RepositoryFactory) {
	t.Helper()

	t.Run("create then get returns the same movie", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		m := movie.Movie{
			ID:          "first",
			Title:       "My Movie",
			Description: "My Movie Description",
			ReleaseYear: 2022,
			Watched:     true,
		}

		require.NoError(t, repo.Create(ctx, m))
		got, err := repo.GetByID(ctx, "first")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, m, *got)
	})

	t.Run("create overwrites existing id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, movie.Movie{ID: "first", Title: "Old", ReleaseYear: 2000}))
		replacement := movie.Movie{ID: "first", Title: "New", Description: "Remake", ReleaseYear: 2020, Watched: true}

		require.NoError(t, repo.Create(ctx, replacement))
		got, err := repo.GetByID(ctx, "first")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, replacement, *got)
	})

	t.Run("get unknown id returns nil", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByID(context.Background(), "any")

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("get by title returns all and only exact matches", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		first := movie.Movie{ID: "first", Title: "My Movie", Description: "My Movie Description", ReleaseYear: 2022, Watched: true}
		second := movie.Movie{ID: "second", Title: "My Second Movie", Description: "My Second Movie Description", ReleaseYear: 2023}
		remake := movie.Movie{ID: "first_remake", Title: "My Movie", Description: "Remake of the first movie", ReleaseYear: 2025, Watched: true}
		lower := movie.Movie{ID: "lower", Title: "my movie", ReleaseYear: 2001}
		for _, m := range []movie.Movie{first, second, remake, lower} {
			require.NoError(t, repo.Create(ctx, m))
		}

		got, err := repo.GetByTitle(ctx, "My Movie", 0, movie.DefaultLimit)

		require.NoError(t, err)
		assert.ElementsMatch(t, []movie.Movie{first, remake}, got)
	})

	t.Run("get by title without matches is empty", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByTitle(context.Background(), "random title", 0, movie.DefaultLimit)

		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("get by title paginates", func(t *testing.T) {
		a := movie.Movie{ID: "my-id", Title: "My Movie", Description: "My description", ReleaseYear: 1990}
		b := movie.Movie{ID: "my-id-2", Title: "My Movie", Description: "My description", ReleaseYear: 1990}
		c := movie.Movie{ID: "my-id-3", Title: "My Movie", Description: "My description", ReleaseYear: 1990}

		tests := []struct {
			name     string
			skip     int
			limit    int
			expected []movie.Movie
		}{
			{name: "limit zero means unlimited", skip: 0, limit: 0, expected: []movie.Movie{a, b, c}},
			{name: "limit one", skip: 0, limit: 1, expected: []movie.Movie{a}},
			{name: "skip one limit one", skip: 1, limit: 1, expected: []movie.Movie{b}},
			{name: "skip one default limit", skip: 1, limit: movie.DefaultLimit, expected: []movie.Movie{b, c}},
			{name: "skip one limit zero", skip: 1, limit: 0, expected: []movie.Movie{b, c}},
			{name: "skip past the end", skip: 5, limit: 0, expected: nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()
				for _, m := range []movie.Movie{a, b, c} {
					require.NoError(t, repo.Create(ctx, m))
				}

				got, err := repo.GetByTitle(ctx, "My Movie", tt.skip, tt.limit)

				require.NoError(t, err)
				assert.ElementsMatch(t, tt.expected, got)
			})
		}
	})

	t.Run("update changes only listed fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		initial := movie.Movie{ID: "first", Title: "My Movie", Description: "My Movie Description", ReleaseYear: 2022}
		require.NoError(t, repo.Create(ctx, initial))

		require.NoError(t, repo.Update(ctx, "first", movie.Changes{movie.FieldWatched: true}))
		got, err := repo.GetByID(ctx, "first")

		require.NoError(t, err)
		require.NotNil(t, got)
		expected := initial
		expected.Watched = true
		assert.Equal(t, expected, *got)
	})

	t.Run("update title", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		initial := movie.Movie{ID: "first", Title: "My Movie", Description: "My Movie Description", ReleaseYear: 2022, Watched: true}
		require.NoError(t, repo.Create(ctx, initial))

		require.NoError(t, repo.Update(ctx, "first", movie.Changes{movie.FieldTitle: "My M0vie"}))
		got, err := repo.GetByID(ctx, "first")

		require.NoError(t, err)
		require.NotNil(t, got)
		expected := initial
		expected.Title = "My M0vie"
		assert.Equal(t, expected, *got)
	})

	t.Run("update rejects id rewrite and keeps movie", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		initial := movie.Movie{ID: "first", Title: "My Movie", Description: "My Movie Description", ReleaseYear: 2022, Watched: true}
		require.NoError(t, repo.Create(ctx, initial))

		err := repo.Update(ctx, "first", movie.Changes{movie.FieldID: "second", movie.FieldTitle: "Changed"})

		assert.True(t, movie.IsRepositoryError(err))
		got, err := repo.GetByID(ctx, "first")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, initial, *got)
		missing, err := repo.GetByID(ctx, "second")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update unknown id fails", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Update(context.Background(), "missing", movie.Changes{movie.FieldWatched: true})

		assert.True(t, movie.IsRepositoryError(err))
	})

	t.Run("update ignores unknown fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		initial := movie.Movie{ID: "first", Title: "My Movie", ReleaseYear: 2022}
		require.NoError(t, repo.Create(ctx, initial))

		require.NoError(t, repo.Update(ctx, "first", movie.Changes{"rating": 10, movie.FieldReleaseYear: 2023}))
		got, err := repo.GetByID(ctx, "first")

		require.NoError(t, err)
		require.NotNil(t, got)
		expected := initial
		expected.ReleaseYear = 2023
		assert.Equal(t, expected, *got)
	})

	t.Run("update with unchanged values succeeds", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, movie.Movie{ID: "first", Title: "My Movie", ReleaseYear: 2022}))

		err := repo.Update(ctx, "first", movie.Changes{movie.FieldTitle: "My Movie"})

		assert.NoError(t, err)
	})

	t.Run("update release year keeps other fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, movie.Movie{
			ID:          "top_movie",
			Title:       "Needs Update",
			Description: "Needs Update",
			ReleaseYear: 2000,
		}))

		require.NoError(t, repo.Update(ctx, "top_movie", movie.Changes{movie.FieldReleaseYear: 3000}))
		got, err := repo.GetByID(ctx, "top_movie")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, movie.Movie{
			ID:          "top_movie",
			Title:       "Needs Update",
			Description: "Needs Update",
			ReleaseYear: 3000,
		}, *got)
	})

	t.Run("delete removes movie and tolerates unknown id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, movie.Movie{ID: "first", Title: "My Movie", ReleaseYear: 2022}))

		require.NoError(t, repo.Delete(ctx, "first"))
		require.NoError(t, repo.Delete(ctx, "never-created"))
		got, err := repo.GetByID(ctx, "first")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("returned movie is a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, movie.Movie{ID: "first", Title: "My Movie", ReleaseYear: 2022}))

		got, err := repo.GetByID(ctx, "first")
		require.NoError(t, err)
		require.NotNil(t, got)
		got.Title = "Mutated"

		again, err := repo.GetByID(ctx, "first")
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, "My Movie", again.Title)
	})
}
