package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestAuthenticator(clock *fakeClock) *JWTAuthenticator {
	return NewJWTAuthenticator("cashflower", "cashflower", "super-secret", WithClock(clock.Now))
}

func TestJWTAuthenticator_RoundTripBeforeExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	a := newTestAuthenticator(clock)

	claims := Claims{"username": "alice"}
	issued, err := a.Issue(PurposeSession, claims, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, clock.t.Add(time.Hour), issued.ExpiresAt)

	clock.Advance(59 * time.Minute)

	verified, err := a.Verify(PurposeSession, issued.Raw)
	require.NoError(t, err)
	assert.Equal(t, claims, verified.Claims)
	assert.Equal(t, issued.ID, verified.ID)
	assert.Equal(t, PurposeSession, verified.Purpose)
}

func TestJWTAuthenticator_ExpiredAfterTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "reset ttl", ttl: 5 * time.Minute},
		{name: "session ttl", ttl: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
			a := newTestAuthenticator(clock)

			issued, err := a.Issue(PurposePasswordReset, Claims{"email": "a@x.com"}, tt.ttl)
			require.NoError(t, err)

			clock.Advance(tt.ttl + time.Second)

			_, err = a.Verify(PurposePasswordReset, issued.Raw)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, jwt.ErrTokenExpired)
		})
	}
}

func TestJWTAuthenticator_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issued, err := newTestAuthenticator(clock).Issue(PurposeSession, Claims{"username": "u"}, time.Hour)
	require.NoError(t, err)

	other := NewJWTAuthenticator("cashflower", "cashflower", "rotated-secret", WithClock(clock.Now))
	_, err = other.Verify(PurposeSession, issued.Raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthenticator_Tampered(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	a := newTestAuthenticator(clock)

	issued, err := a.Issue(PurposeSession, Claims{"username": "u"}, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(issued.Raw, ".")
	require.Len(t, parts, 3)
	forged, err := a.Issue(PurposeSession, Claims{"username": "admin"}, time.Hour)
	require.NoError(t, err)
	forgedParts := strings.Split(forged.Raw, ".")

	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = a.Verify(PurposeSession, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthenticator_PurposeMismatch(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	a := newTestAuthenticator(clock)

	issued, err := a.Issue(PurposeSession, Claims{"username": "u"}, time.Hour)
	require.NoError(t, err)

	_, err = a.Verify(PurposePasswordReset, issued.Raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthenticator_Malformed(t *testing.T) {
	a := newTestAuthenticator(&fakeClock{t: time.Now()})

	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		_, err := a.Verify(PurposeSession, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestJWTAuthenticator_RejectsNonPositiveTTL(t *testing.T) {
	a := newTestAuthenticator(&fakeClock{t: time.Now()})

	_, err := a.Issue(PurposeSession, Claims{}, 0)
	assert.Error(t, err)
}

func TestJWTAuthenticator_EmptyClaims(t *testing.T) {
	a := newTestAuthenticator(&fakeClock{t: time.Now()})

	issued, err := a.Issue(PurposeSession, nil, time.Minute)
	require.NoError(t, err)

	verified, err := a.Verify(PurposeSession, issued.Raw)
	require.NoError(t, err)
	assert.Empty(t, verified.Claims)
}
