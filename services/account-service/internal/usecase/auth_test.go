package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
)

func TestAuthUsecase_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.authUsecase()

	user, err := uc.Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "p1", user.PasswordHash)

	result, err := uc.Login(ctx, LoginParams{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Empty(t, result.MobileNumber)
	require.NotNil(t, result.Token)
	assert.Equal(t, f.clock.now.Add(time.Hour), result.Token.ExpiresAt)

	claims, err := uc.VerifySession(ctx, result.Token.Raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthUsecase_SignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.authUsecase()

	_, err := uc.Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	before, err := f.users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = uc.Signup(ctx, SignupParams{Username: "mallory", Email: "a@x.com", Password: "p2"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	after, err := f.users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAuthUsecase_SignupLosesInsertRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.users.FailOn("CreateUser", mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	})

	_, err := f.authUsecase().Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthUsecase_LoginFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.authUsecase()

	_, err := uc.Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		params  LoginParams
		wantErr error
	}{
		{name: "unknown email", params: LoginParams{Email: "b@x.com", Password: "p1"}, wantErr: ErrUserNotFound},
		{name: "wrong password", params: LoginParams{Email: "a@x.com", Password: "nope"}, wantErr: ErrInvalidCredentials},
		{name: "email is case sensitive", params: LoginParams{Email: "A@x.com", Password: "p1"}, wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Login(ctx, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestAuthUsecase_LoginMalformedHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.users.CreateUser(ctx, &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "corrupt"})
	require.NoError(t, err)

	_, err = f.authUsecase().Login(ctx, LoginParams{Email: "a@x.com", Password: "p1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_LoginIncludesMobileNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.authUsecase()

	_, err := uc.Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	_, err = f.profiles.CreateProfile(ctx, &model.Profile{Email: "a@x.com", MobileNumber: "+66 81 234 5678"})
	require.NoError(t, err)

	result, err := uc.Login(ctx, LoginParams{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "+66 81 234 5678", result.MobileNumber)
}

func TestAuthUsecase_LoginSurvivesProfileLookupFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.authUsecase()

	_, err := uc.Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	f.profiles.FailOn("GetProfileByEmail", errors.New("connection reset"))

	result, err := uc.Login(ctx, LoginParams{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Empty(t, result.MobileNumber)
}

func TestAuthUsecase_VerifySessionExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.authUsecase()

	_, err := uc.Signup(ctx, SignupParams{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	result, err := uc.Login(ctx, LoginParams{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	f.clock.Advance(time.Hour + time.Second)

	_, err = uc.VerifySession(ctx, result.Token.Raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
