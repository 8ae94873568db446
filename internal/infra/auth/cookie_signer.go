package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"guidemyai/config"
	"guidemyai/internal/domain/service"
)

// jwtCookieSigner implements CookieSigner with an HS256 JWT wrapping the raw
// session token. The session row in the database stays the source of truth;
// the signature only rejects tampered cookies before any lookup.
type jwtCookieSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewCookieSigner is the constructor for jwtCookieSigner.
func NewCookieSigner(cfg *config.Config) (service.CookieSigner, error) {
	if cfg.Auth == nil || cfg.Auth.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtCookieSigner{
		secret: []byte(cfg.Auth.SessionSecret),
		ttl:    cfg.Auth.SessionTTL,
	}, nil
}

// Sign wraps a raw session token into a signed cookie value.
func (s *jwtCookieSigner) Sign(token string) (string, error) {
	claims := jwt.MapClaims{
		"sid": token,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session cookie")
	}

	return signed, nil
}

// Verify unwraps a cookie value back to the raw session token.
func (s *jwtCookieSigner) Verify(cookieValue string) (string, error) {
	parsed, err := jwt.Parse(cookieValue, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.Wrap(err, "invalid session cookie")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("failed to parse session cookie claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session token missing from cookie")
	}

	return sid, nil
}
