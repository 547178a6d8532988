package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ErolGelbul/imbd-tracker/errs"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := errs.Errorf(errs.EINVALID, "can't update movie %s", "id")

	assert.Equal(t, "application error: code=invalid message=can't update movie id", err.Error())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"application error", errs.Errorf(errs.ENOTFOUND, "movie not found"), errs.ENOTFOUND},
		{"wrapped application error", fmt.Errorf("get movie: %w", errs.Errorf(errs.EINVALID, "bad id")), errs.EINVALID},
		{"plain error", errors.New("connection reset"), errs.EINTERNAL},
		{"context error", context.Canceled, errs.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errs.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"application error", errs.Errorf(errs.ENOTFOUND, "Movie with id %s is not found.", "m1"), "Movie with id m1 is not found."},
		{"wrapped application error", fmt.Errorf("update: %w", errs.Errorf(errs.EINVALID, "can't update movie id.")), "can't update movie id."},
		{"plain error hides details", errors.New("dial tcp 10.0.0.1:27017"), "Internal error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errs.ErrorMessage(tt.err))
		})
	}
}
