package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
)

func TestManager_BindAndClear(t *testing.T) {
	m := NewManager(Config{CookieName: "token", CookieTTL: 100 * time.Minute})

	w := httptest.NewRecorder()
	m.Bind(w, "signed-token")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 6000, cookies[0].MaxAge)

	w = httptest.NewRecorder()
	m.Clear(w)

	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestManager_Token(t *testing.T) {
	m := NewManager(Config{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := m.Token(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	token, ok := m.Token(r)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

type stubVerifier struct{}

func (stubVerifier) VerifySession(_ context.Context, token string) (*usecase.SessionClaims, error) {
	if token != "good" {
		return nil, usecase.ErrInvalidToken
	}
	return &usecase.SessionClaims{Username: "alice"}, nil
}

func TestManager_RequireSession(t *testing.T) {
	logger := zerolog.Nop()
	m := NewManager(Config{CookieName: "token", CookieTTL: time.Hour})

	handler := m.RequireSession(stubVerifier{}, &logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(claims.Username))
	}))

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{name: "no cookie", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", cookie: "bad", wantStatus: http.StatusUnauthorized},
		{name: "valid token", cookie: "good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "alice", w.Body.String())
			}
		})
	}
}
