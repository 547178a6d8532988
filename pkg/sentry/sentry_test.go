package sentry

import (
	"errors"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_MethodChaining(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(nil, nil)
	err := errors.New("mongodb: find movie: connection refused")
	tags := map[string]string{"storage": "mongodb"}

	s := new(Sentry)
	result := s.
		WithContext(ctx).
		WithError(err).
		WithLevel(sentrygo.LevelError).
		WithTags(tags)

	assert.Same(t, s, result)
	assert.Equal(t, ctx, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, sentrygo.LevelError, s.level)
	assert.Equal(t, tags, s.tags)
}

func TestSentry_DisabledEnvironments(t *testing.T) {
	tests := []struct {
		name   string
		appEnv string
		dsn    string
	}{
		{name: "local env", appEnv: "local", dsn: "https://public@sentry.example.com/1"},
		{name: "empty dsn", appEnv: "production", dsn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			t.Setenv("SENTRY_DSN", tt.dsn)
			original := FlushTime
			FlushTime = 0
			t.Cleanup(func() { FlushTime = original })

			assert.False(t, enabled())
			assert.NotPanics(t, func() {
				WithTags(map[string]string{"storage": "memory"}).Fatal(errors.New("listen: address in use"))
				WithContext(echo.New().NewContext(nil, nil)).Error(errors.New("request failed"))
			})
		})
	}
}

func TestSentry_SendsWhenConfigured(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
	})
	assert.NoError(t, err)
	defer sentrygo.Flush(0)

	assert.True(t, enabled())
	assert.NotPanics(t, func() {
		WithTags(map[string]string{"storage": "memory"}).Error(errors.New("test error"))
		new(Sentry).Error(nil)
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("returns current hub without context", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("returns request hub from echo context", func(t *testing.T) {
		ctx := echo.New().NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		assert.Same(t, hub, WithContext(ctx).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	s := WithTags(map[string]string{"env": "test"}).WithLevel(sentrygo.LevelWarning)
	scope := sentrygo.NewScope()

	assert.NotPanics(t, func() {
		s.configScope(scope)
	})
}
