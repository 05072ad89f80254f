package usecase

import (
	"context"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

// TransactionUsecase manages transaction records keyed by owner email.
type TransactionUsecase interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	ListTransactions(ctx context.Context, email string) ([]*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type transactionUsecase struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
}

func NewTransactionUsecase(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
) TransactionUsecase {
	return &transactionUsecase{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

func (u *transactionUsecase) CreateTransaction(
	ctx context.Context,
	tx *model.Transaction,
) (*model.Transaction, error) {
	if err := requireUser(ctx, u.userRepo, tx.Email); err != nil {
		return nil, err
	}

	return u.transactionRepo.CreateTransaction(ctx, tx)
}

func (u *transactionUsecase) ListTransactions(ctx context.Context, email string) ([]*model.Transaction, error) {
	return u.transactionRepo.ListTransactionsByEmail(ctx, email)
}

func (u *transactionUsecase) DeleteTransaction(ctx context.Context, id string) error {
	if err := u.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		if isMissingRecord(err) {
			return ErrTransactionNotFound
		}
		return err
	}

	return nil
}
