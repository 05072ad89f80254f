package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository/repositorytest"
	"github.com/vasapolrittideah/cashflower/shared/auth"
	"github.com/vasapolrittideah/cashflower/shared/mailer/mailertest"
	"github.com/vasapolrittideah/cashflower/shared/security"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	users        *repositorytest.Users
	profiles     *repositorytest.Profiles
	goals        *repositorytest.Goals
	transactions *repositorytest.Transactions
	resetTokens  *repositorytest.ResetTokens
	hasher       *security.Argon2Hasher
	clock        *testClock
	tokens       *auth.JWTAuthenticator
	mail         *mailertest.Recorder
	logger       *zerolog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zerolog.Nop()
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	return &fixture{
		users:        repositorytest.NewUsers(),
		profiles:     repositorytest.NewProfiles(),
		goals:        repositorytest.NewGoals(),
		transactions: repositorytest.NewTransactions(),
		resetTokens:  repositorytest.NewResetTokens(),
		hasher:       security.NewArgon2Hasher(security.HashParams{TimeCost: 1, MemoryCost: 8 * 1024, Parallelism: 1}),
		clock:        clock,
		tokens:       auth.NewJWTAuthenticator("cashflower", "cashflower", "test-secret", auth.WithClock(clock.Now)),
		mail:         &mailertest.Recorder{},
		logger:       &logger,
	}
}

func (f *fixture) authUsecase() AuthUsecase {
	return NewAuthUsecase(f.users, f.profiles, f.hasher, f.tokens, time.Hour, f.logger)
}

func (f *fixture) passwordResetUsecase(singleUse bool) PasswordResetUsecase {
	return NewPasswordResetUsecase(f.users, f.resetTokens, f.hasher, f.tokens, f.mail, PasswordResetConfig{
		FrontendURL: "http://localhost:3000",
		TokenTTL:    5 * time.Minute,
		SingleUse:   singleUse,
	}, f.logger)
}

func (f *fixture) accountUsecase() AccountUsecase {
	return NewAccountUsecase(f.users, f.profiles, f.goals, f.transactions, f.resetTokens, f.logger)
}

// tokenFromLastMail extracts the reset token from the most recent reset email.
func (f *fixture) tokenFromLastMail(t *testing.T) string {
	t.Helper()

	sent := f.mail.Sent()
	require.NotEmpty(t, sent)

	link := sent[len(sent)-1].Body
	idx := strings.LastIndex(link, "/reset_password/")
	require.NotEqual(t, -1, idx, link)

	token, err := DecodeResetToken(link[idx+len("/reset_password/"):])
	require.NoError(t, err)
	return token
}
