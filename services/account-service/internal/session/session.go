package session

import (
	"net/http"
	"time"
)

// Config controls the session cookie.
type Config struct {
	CookieName string
	// CookieTTL outlives the token on purpose; the token's own expiry is the
	// effective boundary.
	CookieTTL time.Duration
	Secure    bool
}

// Manager binds session tokens to an httpOnly cookie.
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager creates a new Manager.
func NewManager(cfg Config) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "token"
	}

	return &Manager{
		cfg: cfg,
		now: time.Now,
	}
}

// Bind sets the session cookie carrying token.
func (m *Manager) Bind(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cfg.CookieTTL.Seconds()),
		Expires:  m.now().Add(m.cfg.CookieTTL),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie. It is safe to call without a session.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the session token carried by r, if any.
func (m *Manager) Token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
