package main

import (
	"context"
	"strings"
	"testing"

	"github.com/ErolGelbul/imbd-tracker/memory"
	"github.com/ErolGelbul/imbd-tracker/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy
2,Jumanji (1995),Adventure|Children|Fantasy
3,"American President, The (1995)",Comedy|Drama|Romance
x,Broken Row (2000),Drama
4,Untitled,(no genres listed)
`

func TestImportMovies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovieRepository()

	count, err := importMovies(ctx, repo, strings.NewReader(sampleCSV), 0)

	require.NoError(t, err)
	assert.Equal(t, 4, count)

	movies, err := repo.GetByTitle(ctx, "American President, The", 0, 0)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 1995, movies[0].ReleaseYear)
	assert.Equal(t, "Comedy, Drama, Romance", movies[0].Description)
	assert.False(t, movies[0].Watched)

	untitled, err := repo.GetByTitle(ctx, "Untitled", 0, 0)
	require.NoError(t, err)
	require.Len(t, untitled, 1)
	assert.Zero(t, untitled[0].ReleaseYear)
	assert.Empty(t, untitled[0].Description)
}

func TestImportMovies_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovieRepository()

	_, err := importMovies(ctx, repo, strings.NewReader(sampleCSV), 0)
	require.NoError(t, err)
	_, err = importMovies(ctx, repo, strings.NewReader(sampleCSV), 0)
	require.NoError(t, err)

	movies, err := repo.GetByTitle(ctx, "Toy Story", 0, 0)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
}

func TestImportMovies_Limit(t *testing.T) {
	repo := memory.NewMovieRepository()

	count, err := importMovies(context.Background(), repo, strings.NewReader(sampleCSV), 2)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImportMovies_MissingColumns(t *testing.T) {
	_, err := importMovies(context.Background(), memory.NewMovieRepository(), strings.NewReader("id,name\n1,x\n"), 0)

	assert.EqualError(t, err, "missing required columns in csv header")
}

func TestParseMovieRecord(t *testing.T) {
	cols := csvColumns{movieID: 0, title: 1, genres: 2}

	m, ok := parseMovieRecord([]string{"1", "Toy Story (1995)", "Adventure|Animation"}, cols)
	require.True(t, ok)
	assert.Equal(t, movie.Movie{
		ID:          m.ID,
		Title:       "Toy Story",
		Description: "Adventure, Animation",
		ReleaseYear: 1995,
	}, m)

	again, _ := parseMovieRecord([]string{"1", "Toy Story (1995)", "Adventure"}, cols)
	assert.Equal(t, m.ID, again.ID, "ids are derived from the MovieLens id")

	_, ok = parseMovieRecord([]string{"1", "Too short"}, cols)
	assert.False(t, ok)
}

func TestSplitTitleYear(t *testing.T) {
	tests := []struct {
		raw   string
		title string
		year  int
	}{
		{"Heat (1995)", "Heat", 1995},
		{"Babylon 5 (1994) ", "Babylon 5", 1994},
		{"Sabrina (1995) (extended)", "Sabrina (1995) (extended)", 0},
		{"No Year", "No Year", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			title, year := splitTitleYear(tt.raw)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.year, year)
		})
	}
}
