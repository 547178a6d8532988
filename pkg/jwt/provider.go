package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/ErolGelbul/imbd-tracker/errs"

	"github.com/golang-jwt/jwt"
)

const accessTokenType = "access"

var ErrInvalidToken = errs.Errorf(errs.EUNAUTHORIZED, "invalid token")

// Provider issues and verifies the HS256 tokens accepted by the movie write routes.
type Provider struct {
	Secret string
	TTL    time.Duration

	now func() time.Time
}

func NewProvider(secret string, ttl time.Duration) *Provider {
	return &Provider{
		Secret: secret,
		TTL:    ttl,
		now:    time.Now,
	}
}

func (p *Provider) Issue(subject string) (string, error) {
	if strings.TrimSpace(p.Secret) == "" {
		return "", errors.New("jwt: secret is required")
	}
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("jwt: subject is required")
	}

	now := p.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": accessTokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(p.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// Parse verifies token and returns its subject.
func (p *Provider) Parse(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(p.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if claimType, ok := claims["type"].(string); !ok || claimType != accessTokenType {
		return "", ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
