// Package token issues and verifies the short-lived signed links that let a learner open a
// quiz from a notification without a login session.
package token

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/at-ishikawa/memoquiz/internal/clock"
)

const (
	DefaultTTL = 24 * time.Hour

	issuer     = "memoquiz"
	keyInfo    = "memoquiz quiz access token v1"
	signingAlg = "HS256"
)

var (
	// ErrInvalid is wrapped by every verification failure.
	ErrInvalid   = errors.New("invalid token")
	ErrExpired   = fmt.Errorf("%w: expired", ErrInvalid)
	ErrMalformed = fmt.Errorf("%w: malformed", ErrInvalid)
	ErrSignature = fmt.Errorf("%w: signature mismatch", ErrInvalid)
	// ErrWrongQuiz is returned by Authorize when a valid token targets another quiz.
	ErrWrongQuiz = fmt.Errorf("%w: issued for another quiz", ErrInvalid)
)

// Subject is the (quiz, user) pair a token grants access to.
type Subject struct {
	QuizID    int64
	UserID    int64
	ExpiresAt time.Time
}

type Claims struct {
	QuizID int64 `json:"qid"`
	UserID int64 `json:"uid"`
	// ExpiresAtNano is the exact expiry. The registered exp claim only has second precision.
	ExpiresAtNano int64 `json:"exn"`
	jwt.RegisteredClaims
}

type Service struct {
	key   []byte
	ttl   time.Duration
	clock clock.Clock
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewService derives the HMAC key from secret with HKDF-SHA256.
func NewService(secret string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}

	s := &Service{key: key, ttl: DefaultTTL, clock: clock.Real()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue returns a signed token for (quizID, userID) that expires after the configured TTL.
func (s *Service) Issue(quizID, userID int64) (string, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		QuizID:        quizID,
		UserID:        userID,
		ExpiresAtNano: expiresAt.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString > %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject the token was issued for.
// A token is still valid at the exact instant it expires.
func (s *Service) Verify(tokenString string) (Subject, error) {
	if tokenString == "" {
		return Subject{}, ErrMalformed
	}

	// Expiry is checked below against the nanosecond claim, so jwt's own time checks are off.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingAlg}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	var claims Claims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return Subject{}, classify(err)
	}
	if claims.Issuer != issuer || claims.ExpiresAtNano <= 0 || claims.QuizID <= 0 || claims.UserID <= 0 {
		return Subject{}, ErrMalformed
	}
	expiresAt := time.Unix(0, claims.ExpiresAtNano).UTC()
	if s.clock.Now().After(expiresAt) {
		return Subject{}, ErrExpired
	}
	return Subject{
		QuizID:    claims.QuizID,
		UserID:    claims.UserID,
		ExpiresAt: expiresAt,
	}, nil
}

func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Before(t) {
		return truncated.Add(time.Second)
	}
	return truncated
}

// Authorize verifies the token and requires it to have been issued for quizID.
func (s *Service) Authorize(tokenString string, quizID int64) (Subject, error) {
	sub, err := s.Verify(tokenString)
	if err != nil {
		return Subject{}, err
	}
	if sub.QuizID != quizID {
		return Subject{}, ErrWrongQuiz
	}
	return sub, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrSignature
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
