package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ErolGelbul/imbd-tracker/movie"

	"github.com/google/uuid"
)

// movieLensNamespace derives stable ids so that re-running the import
// overwrites the same movies instead of duplicating them.
var movieLensNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://movielens.org/movies"))

var titleYearPattern = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

const noGenres = "(no genres listed)"

type csvColumns struct {
	movieID, title, genres int
}

func importMovies(ctx context.Context, repo movie.Repository, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	cols, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		m, ok := parseMovieRecord(record, cols)
		if !ok {
			continue
		}
		if err := repo.Create(ctx, m); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (csvColumns, error) {
	header, err := reader.Read()
	if err != nil {
		return csvColumns{}, err
	}

	cols := csvColumns{movieID: -1, title: -1, genres: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			cols.movieID = i
		case "title":
			cols.title = i
		case "genres":
			cols.genres = i
		}
	}
	if cols.movieID == -1 || cols.title == -1 || cols.genres == -1 {
		return csvColumns{}, errors.New("missing required columns in csv header")
	}

	return cols, nil
}

func parseMovieRecord(record []string, cols csvColumns) (movie.Movie, bool) {
	if cols.movieID >= len(record) || cols.title >= len(record) || cols.genres >= len(record) {
		return movie.Movie{}, false
	}

	movieLensID := strings.TrimSpace(record[cols.movieID])
	if _, err := strconv.Atoi(movieLensID); err != nil {
		return movie.Movie{}, false
	}

	title, year := splitTitleYear(strings.TrimSpace(record[cols.title]))
	if title == "" {
		return movie.Movie{}, false
	}

	return movie.Movie{
		ID:          uuid.NewSHA1(movieLensNamespace, []byte(movieLensID)).String(),
		Title:       title,
		Description: describeGenres(record[cols.genres]),
		ReleaseYear: year,
	}, true
}

// splitTitleYear turns "Toy Story (1995)" into ("Toy Story", 1995). Titles
// without a trailing year are returned unchanged with year 0.
func splitTitleYear(raw string) (string, int) {
	match := titleYearPattern.FindStringSubmatch(raw)
	if match == nil {
		return raw, 0
	}
	year, _ := strconv.Atoi(match[2])
	return match[1], year
}

func describeGenres(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return ""
	}
	return strings.Join(strings.Split(raw, "|"), ", ")
}
