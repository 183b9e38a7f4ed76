package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionClaim = "sid"

var ErrInvalidToken = errors.New("invalid session token")

// TokenService issues and checks the tokens binding a client to its session.
type TokenService interface {
	Issue(sessionID string) (string, error)
	Verify(token string) (string, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*tokenService)

// WithClock replaces time.Now for issuing and checking tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *tokenService) { s.now = now }
}

// NewTokenService creates a TokenService signing HS256 tokens with secret.
// Tokens expire ttl after they are issued; RequireSession hands out a fresh
// one on every authorised request, so ttl bounds idle time, not session
// length. An empty secret is replaced by a random one, so tokens do not
// survive a restart.
func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) (TokenService, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
	}
	s := &tokenService{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates a signed token for sessionID.
func (s *tokenService) Issue(sessionID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		sessionClaim: sessionID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the signature and expiry of token and returns its session ID.
func (s *tokenService) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sessionID, ok := claims[sessionClaim].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("%w: missing %s claim", ErrInvalidToken, sessionClaim)
	}
	return sessionID, nil
}
