package main

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
)

const moviesCSVName = "movies.csv"

var errMoviesCSVMissing = errors.New("movies.csv not found in dataset")

// datasetFile streams movies.csv straight out of a downloaded MovieLens zip.
// Closing it removes the temporary archive.
type datasetFile struct {
	io.ReadCloser
	archive *zip.ReadCloser
	zipPath string
}

func (d *datasetFile) Close() error {
	err := errors.Join(d.ReadCloser.Close(), d.archive.Close())
	_ = os.Remove(d.zipPath)
	return err
}

func openDataset(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if url == "" {
		return nil, errors.New("dataset url is empty")
	}

	tmp, err := os.CreateTemp("", "movielens-*.zip")
	if err != nil {
		return nil, err
	}
	zipPath := tmp.Name()

	err = fetchDataset(ctx, client, url, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(zipPath)
		return nil, err
	}

	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		_ = os.Remove(zipPath)
		return nil, fmt.Errorf("open dataset archive: %w", err)
	}

	for _, f := range archive.File {
		if path.Base(f.Name) != moviesCSVName {
			continue
		}
		src, err := f.Open()
		if err != nil {
			_ = archive.Close()
			_ = os.Remove(zipPath)
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		return &datasetFile{ReadCloser: src, archive: archive, zipPath: zipPath}, nil
	}

	_ = archive.Close()
	_ = os.Remove(zipPath)
	return nil, errMoviesCSVMissing
}

func fetchDataset(ctx context.Context, client *http.Client, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}
