package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
	"github.com/vasapolrittideah/cashflower/shared/auth"
	"github.com/vasapolrittideah/cashflower/shared/mailer"
	"github.com/vasapolrittideah/cashflower/shared/security"
)

// PasswordResetUsecase defines the business logic for password reset token operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a reset token for email and mails the reset link.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword redeems a reset token and replaces the stored password hash.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordResetConfig holds the reset flow settings.
type PasswordResetConfig struct {
	// FrontendURL is the base of the emailed reset link.
	FrontendURL string
	TokenTTL    time.Duration
	// SingleUse records each issued token and rejects replays.
	SingleUse bool
}

const emailClaim = "email"

type passwordResetUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	hasher    security.PasswordHasher
	tokens    auth.TokenService
	mailer    mailer.Sender
	cfg       PasswordResetConfig
	logger    *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	hasher security.PasswordHasher,
	tokens auth.TokenService,
	mailer mailer.Sender,
	cfg PasswordResetConfig,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		cfg:       cfg,
		logger:    logger,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := u.tokens.Issue(auth.PurposePasswordReset, auth.Claims{emailClaim: user.Email}, u.cfg.TokenTTL)
	if err != nil {
		return err
	}

	if u.cfg.SingleUse {
		if err := u.tokenRepo.InvalidateEmailTokens(ctx, user.Email); err != nil {
			return err
		}

		if _, err := u.tokenRepo.CreateToken(ctx, &model.PasswordResetToken{
			JTI:       token.ID,
			Email:     user.Email,
			ExpiresAt: token.ExpiresAt,
		}); err != nil {
			return err
		}
	}

	resetLink := ResetLink(u.cfg.FrontendURL, token.Raw)
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Cashflower Team</p>
	`, user.Username, resetLink, resetLink, u.cfg.TokenTTL)

	if err := u.mailer.Send(ctx, mailer.Email{
		To:       []string{user.Email},
		Subject:  "Reset Password",
		Body:     resetLink,
		HTMLBody: htmlBody,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	verified, err := u.tokens.Verify(auth.PurposePasswordReset, token)
	if err != nil {
		u.logger.Debug().Err(err).Msg("rejected password reset token")
		return ErrInvalidToken
	}

	email, ok := verified.Claims[emailClaim].(string)
	if !ok || email == "" {
		return ErrInvalidToken
	}

	if u.cfg.SingleUse {
		consumed, err := u.tokenRepo.ConsumeToken(ctx, verified.ID)
		if err != nil {
			return err
		}
		if !consumed {
			u.logger.Debug().Str("jti", verified.ID).Msg("password reset token already used")
			return ErrInvalidToken
		}
	}

	passwordHash, err := u.hasher.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUserByEmail(ctx, email, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The account was deleted after the token was issued.
			return ErrInvalidToken
		}
		return err
	}

	return nil
}

// ResetLink builds the emailed link. Dots are escaped as well so that the
// token survives clients that collapse dotted path segments.
func ResetLink(frontendURL, token string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(token), ".", "%2E")
	return strings.TrimRight(frontendURL, "/") + "/reset_password/" + encoded
}

// DecodeResetToken reverses the link encoding of a token taken from a URL path.
func DecodeResetToken(encoded string) (string, error) {
	return url.PathUnescape(encoded)
}
