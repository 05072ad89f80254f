package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/cashflower/shared/discovery"
	"github.com/vasapolrittideah/cashflower/shared/logger"
	"github.com/vasapolrittideah/cashflower/shared/mailer"
)

// AccountServiceConfig is the complete process configuration, read once at
// startup and passed to each component.
type AccountServiceConfig struct {
	Port           int    `env:"PORT"             envDefault:"8080"`
	HealthGRPCPort int    `env:"HEALTH_GRPC_PORT" envDefault:"9090"`
	FrontendURL    string `env:"FRONTEND_URL"     envDefault:"http://localhost:3000"`
	ContactInbox   string `env:"CONTACT_INBOX"`

	Mongo     MongoConfig
	Token     TokenConfig
	Session   SessionConfig
	Argon2    Argon2Config
	Mailer    mailer.Config
	Discovery discovery.Config
	Log       logger.Config
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGODB_URI"`
	Database string `env:"MONGODB_DATABASE" envDefault:"cashflower"`
}

// TokenConfig holds the signing secret and token lifetimes.
type TokenConfig struct {
	Secret                      string        `env:"TOKEN_SECRET"`
	Issuer                      string        `env:"TOKEN_ISSUER"                envDefault:"cashflower"`
	SessionTokenExpiresIn       time.Duration `env:"SESSION_TOKEN_TTL"           envDefault:"1h"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_TTL"    envDefault:"5m"`
	PasswordResetSingleUse      bool          `env:"PASSWORD_RESET_SINGLE_USE"   envDefault:"false"`
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME"   envDefault:"token"`
	CookieExpiresIn time.Duration `env:"SESSION_COOKIE_TTL"    envDefault:"100m"`
	CookieSecure    bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	Enforce         bool          `env:"SESSION_ENFORCE"       envDefault:"false"`
}

// Argon2Config controls the password hashing work factor.
type Argon2Config struct {
	TimeCost    uint32 `env:"ARGON2_TIME_COST"   envDefault:"3"`
	MemoryCost  uint32 `env:"ARGON2_MEMORY_COST" envDefault:"65536"`
	Parallelism uint8  `env:"ARGON2_PARALLELISM" envDefault:"4"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*AccountServiceConfig, error) {
	cfg, err := env.ParseAs[AccountServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required settings are present and consistent.
func (c *AccountServiceConfig) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("missing MONGODB_URI environment variable")
	}
	if c.Token.Secret == "" {
		return errors.New("missing TOKEN_SECRET environment variable")
	}
	if c.Token.SessionTokenExpiresIn <= 0 {
		return errors.New("SESSION_TOKEN_TTL must be positive")
	}
	if c.Token.PasswordResetTokenExpiresIn <= 0 {
		return errors.New("PASSWORD_RESET_TOKEN_TTL must be positive")
	}
	if c.Session.CookieExpiresIn < c.Token.SessionTokenExpiresIn {
		return errors.New("SESSION_COOKIE_TTL must not be shorter than SESSION_TOKEN_TTL")
	}
	if _, err := url.ParseRequestURI(c.FrontendURL); err != nil {
		return fmt.Errorf("invalid FRONTEND_URL: %w", err)
	}
	if c.ContactInbox == "" {
		return errors.New("missing CONTACT_INBOX environment variable")
	}

	return c.Mailer.Validate()
}
