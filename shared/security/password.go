package security

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// HashPassword returns an encoded salted hash that is safe to persist.
	HashPassword(password string) (string, error)

	// VerifyPassword reports whether password matches the encoded hash.
	// A mismatch is (false, nil); an error means the stored hash is malformed.
	VerifyPassword(password, encoded string) (bool, error)
}

// HashParams controls the argon2id work factor.
type HashParams struct {
	TimeCost    uint32
	MemoryCost  uint32
	Parallelism uint8
}

// DefaultHashParams mirrors the argon2 library defaults.
func DefaultHashParams() HashParams {
	cfg := argon2.DefaultConfig()
	return HashParams{
		TimeCost:    cfg.TimeCost,
		MemoryCost:  cfg.MemoryCost,
		Parallelism: cfg.Parallelism,
	}
}

// Argon2Hasher implements PasswordHasher using argon2id.
type Argon2Hasher struct {
	config argon2.Config
}

// NewArgon2Hasher creates a new Argon2Hasher with the given work factor.
// Zero values fall back to the library defaults.
func NewArgon2Hasher(params HashParams) *Argon2Hasher {
	cfg := argon2.DefaultConfig()
	cfg.Mode = argon2.ModeArgon2id

	if params.TimeCost > 0 {
		cfg.TimeCost = params.TimeCost
	}
	if params.MemoryCost > 0 {
		cfg.MemoryCost = params.MemoryCost
	}
	if params.Parallelism > 0 {
		cfg.Parallelism = params.Parallelism
	}

	return &Argon2Hasher{config: cfg}
}

// HashPassword hashes the password with a random salt.
func (h *Argon2Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword recomputes the hash using the parameters embedded in encoded
// and compares in constant time.
func (h *Argon2Hasher) VerifyPassword(password, encoded string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encoded))
}
