package jwt

import (
	"testing"
	"time"

	"github.com/ErolGelbul/imbd-tracker/errs"

	gojwt "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_IssueAndParse(t *testing.T) {
	p := NewProvider("secret", time.Hour)

	token, err := p.Issue("curator")
	require.NoError(t, err)

	subject, err := p.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "curator", subject)
}

func TestProvider_Issue_Validation(t *testing.T) {
	_, err := NewProvider("", time.Hour).Issue("curator")
	assert.EqualError(t, err, "jwt: secret is required")

	_, err = NewProvider("secret", time.Hour).Issue(" ")
	assert.EqualError(t, err, "jwt: subject is required")
}

func TestProvider_Parse_Rejects(t *testing.T) {
	p := NewProvider("secret", time.Hour)

	expired := NewProvider("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("curator")
	require.NoError(t, err)

	otherKey, err := NewProvider("other", time.Hour).Issue("curator")
	require.NoError(t, err)

	refresh, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":  "curator",
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"malformed":  "not-a-token",
		"expired":    expiredToken,
		"other key":  otherKey,
		"wrong type": refresh,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.Parse(token)

			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
		})
	}
}
