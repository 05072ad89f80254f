package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose scopes a token to one flow so a session token cannot be redeemed as a
// password reset token and vice versa.
type Purpose string

const (
	PurposeSession       Purpose = "session"
	PurposePasswordReset Purpose = "password_reset"
)

var (
	// ErrInvalidToken is returned for every verification failure. The wrapped cause
	// (expired, bad signature, wrong purpose) is only meant for logs.
	ErrInvalidToken = errors.New("invalid token")

	errPurposeMismatch = errors.New("token purpose mismatch")
	errInvalidTTL      = errors.New("token ttl must be positive")
)

// Claims is the application payload carried by a token.
type Claims map[string]any

// IssuedToken is a freshly signed token.
type IssuedToken struct {
	Raw       string
	ID        string
	ExpiresAt time.Time
}

// VerifiedToken is the result of a successful verification.
type VerifiedToken struct {
	ID        string
	Purpose   Purpose
	Claims    Claims
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-limited tokens.
type TokenService interface {
	Issue(purpose Purpose, claims Claims, ttl time.Duration) (*IssuedToken, error)
	Verify(purpose Purpose, raw string) (*VerifiedToken, error)
}

type tokenClaims struct {
	Purpose Purpose `json:"pur"`
	Data    Claims  `json:"dat,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator represents a JWT based token service signed with a single
// process-wide HMAC secret.
type JWTAuthenticator struct {
	audience string
	issuer   string
	secret   []byte
	now      func() time.Time
}

// Option configures a JWTAuthenticator.
type Option func(*JWTAuthenticator)

// WithClock overrides the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(a *JWTAuthenticator) {
		a.now = now
	}
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(audience, issuer, secret string, opts ...Option) *JWTAuthenticator {
	a := &JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		secret:   []byte(secret),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Issue signs claims for the given purpose, valid for ttl from now.
func (a *JWTAuthenticator) Issue(purpose Purpose, claims Claims, ttl time.Duration) (*IssuedToken, error) {
	if ttl <= 0 {
		return nil, errInvalidTTL
	}

	now := a.now()
	jti := uuid.NewString()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Purpose: purpose,
		Data:    claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Raw:       tokenStr,
		ID:        jti,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature, expiry and purpose of raw and returns its claims.
// Any failure satisfies errors.Is(err, ErrInvalidToken).
func (a *JWTAuthenticator) Verify(purpose Purpose, raw string) (*VerifiedToken, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, errPurposeMismatch)
	}

	verified := &VerifiedToken{
		ID:      claims.ID,
		Purpose: claims.Purpose,
		Claims:  claims.Data,
	}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}
	if verified.Claims == nil {
		verified.Claims = Claims{}
	}

	return verified, nil
}
