package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
	"github.com/vasapolrittideah/cashflower/shared/auth"
	"github.com/vasapolrittideah/cashflower/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
	VerifySession(ctx context.Context, token string) (*SessionClaims, error)
}

// SignupParams defines the parameters for user registration.
type SignupParams struct {
	Username string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User *model.User
	// MobileNumber is copied from the linked profile when one exists.
	MobileNumber string
	Token        *auth.IssuedToken
}

// SessionClaims identifies the holder of a verified session token.
type SessionClaims struct {
	Username  string
	ExpiresAt time.Time
}

const usernameClaim = "username"

type authUsecase struct {
	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	hasher          security.PasswordHasher
	tokens          auth.TokenService
	sessionTokenTTL time.Duration
	logger          *zerolog.Logger
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	hasher security.PasswordHasher,
	tokens auth.TokenService,
	sessionTokenTTL time.Duration,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		hasher:          hasher,
		tokens:          tokens,
		sessionTokenTTL: sessionTokenTTL,
		logger:          logger,
	}
}

func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (*model.User, error) {
	// The unique email index closes the window between this check and the
	// insert; both paths surface as ErrUserAlreadyExists.
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := u.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if ok, err := u.hasher.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		u.logger.Error().Err(err).Str("email", user.Email).Msg("stored password hash is malformed")
		return nil, fmt.Errorf("verify password: %w", err)
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(auth.PurposeSession, auth.Claims{usernameClaim: user.Username}, u.sessionTokenTTL)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		User:  user,
		Token: token,
	}

	profile, err := u.profileRepo.GetProfileByEmail(ctx, user.Email)
	switch {
	case err == nil:
		result.MobileNumber = profile.MobileNumber
	case errors.Is(err, mongo.ErrNoDocuments):
	default:
		// The phone number only shapes the response; login still succeeds.
		u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to load profile on login")
	}

	return result, nil
}

func (u *authUsecase) VerifySession(_ context.Context, token string) (*SessionClaims, error) {
	verified, err := u.tokens.Verify(auth.PurposeSession, token)
	if err != nil {
		u.logger.Debug().Err(err).Msg("rejected session token")
		return nil, ErrInvalidToken
	}

	username, ok := verified.Claims[usernameClaim].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &SessionClaims{
		Username:  username,
		ExpiresAt: verified.ExpiresAt,
	}, nil
}
