package movie_test

import (
	"testing"

	"github.com/ErolGelbul/imbd-tracker/errs"
	"github.com/ErolGelbul/imbd-tracker/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangesApply(t *testing.T) {
	original := movie.Movie{
		ID:          "first",
		Title:       "My Movie",
		Description: "My Movie Description",
		ReleaseYear: 2022,
		Watched:     true,
	}

	t.Run("overwrites only listed fields", func(t *testing.T) {
		updated, err := movie.Changes{movie.FieldWatched: false}.Apply(original)

		require.NoError(t, err)
		expected := original
		expected.Watched = false
		assert.Equal(t, expected, updated)
	})

	t.Run("applies every updatable field", func(t *testing.T) {
		updated, err := movie.Changes{
			movie.FieldTitle:       "My M0vie",
			movie.FieldDescription: "Another description",
			movie.FieldReleaseYear: 1999,
			movie.FieldWatched:     false,
		}.Apply(original)

		require.NoError(t, err)
		assert.Equal(t, movie.Movie{
			ID:          "first",
			Title:       "My M0vie",
			Description: "Another description",
			ReleaseYear: 1999,
			Watched:     false,
		}, updated)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		updated, err := movie.Changes{"rating": 5, movie.FieldTitle: "New"}.Apply(original)

		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, original.Description, updated.Description)
	})

	t.Run("rejects id rewrite", func(t *testing.T) {
		_, err := movie.Changes{movie.FieldID: "second", movie.FieldTitle: "New"}.Apply(original)

		assert.Equal(t, movie.ErrImmutableID, err)
		assert.True(t, movie.IsRepositoryError(err))
	})

	t.Run("rejects mistyped value", func(t *testing.T) {
		_, err := movie.Changes{movie.FieldReleaseYear: "2000"}.Apply(original)

		assert.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})
}

func TestChangesKnown(t *testing.T) {
	known := movie.Changes{
		movie.FieldID:    "x",
		movie.FieldTitle: "t",
		"unknown":        1,
	}.Known()

	assert.Equal(t, movie.Changes{movie.FieldTitle: "t"}, known)
}

func TestIsRepositoryError(t *testing.T) {
	assert.True(t, movie.IsRepositoryError(movie.ErrMovieNotFound("missing")))
	assert.False(t, movie.IsRepositoryError(errs.Errorf(errs.ENOTFOUND, "missing")))
	assert.False(t, movie.IsRepositoryError(assert.AnError))
	assert.False(t, movie.IsRepositoryError(nil))
}
