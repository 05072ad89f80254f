package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

// AccountUsecase manages the lifecycle of a whole account.
type AccountUsecase interface {
	// DeleteAccount removes the credential and every record owned by email.
	// It is idempotent.
	DeleteAccount(ctx context.Context, email string) (*DeleteAccountResult, error)
}

// DeleteAccountResult reports how many records each store removed.
type DeleteAccountResult struct {
	Users        int64
	Profiles     int64
	Goals        int64
	Transactions int64
	ResetTokens  int64
}

type accountUsecase struct {
	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	goalRepo        repository.GoalRepository
	transactionRepo repository.TransactionRepository
	tokenRepo       repository.PasswordResetTokenRepository
	logger          *zerolog.Logger
}

func NewAccountUsecase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	goalRepo repository.GoalRepository,
	transactionRepo repository.TransactionRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	logger *zerolog.Logger,
) AccountUsecase {
	return &accountUsecase{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		tokenRepo:       tokenRepo,
		logger:          logger,
	}
}

// DeleteAccount removes the credential first so the account stops being usable,
// then fans out to the dependent stores. No transaction spans the stores: a
// failure leaves already deleted records deleted and the rest orphaned.
func (u *accountUsecase) DeleteAccount(ctx context.Context, email string) (*DeleteAccountResult, error) {
	result := &DeleteAccountResult{}

	users, err := u.userRepo.DeleteUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	result.Users = users

	// Plain group: one failing store must not cancel the others.
	var g errgroup.Group

	g.Go(func() error {
		n, err := u.profileRepo.DeleteProfilesByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("delete profiles: %w", err)
		}
		result.Profiles = n
		return nil
	})

	g.Go(func() error {
		n, err := u.goalRepo.DeleteGoalsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("delete goals: %w", err)
		}
		result.Goals = n
		return nil
	})

	g.Go(func() error {
		n, err := u.transactionRepo.DeleteTransactionsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("delete transactions: %w", err)
		}
		result.Transactions = n
		return nil
	})

	g.Go(func() error {
		n, err := u.tokenRepo.DeleteTokensByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("delete password reset tokens: %w", err)
		}
		result.ResetTokens = n
		return nil
	})

	if err := g.Wait(); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("account deletion left orphaned records")
		return nil, err
	}

	u.logger.Info().
		Str("email", email).
		Int64("users", result.Users).
		Int64("profiles", result.Profiles).
		Int64("goals", result.Goals).
		Int64("transactions", result.Transactions).
		Int64("reset_tokens", result.ResetTokens).
		Msg("account deleted")

	return result, nil
}
