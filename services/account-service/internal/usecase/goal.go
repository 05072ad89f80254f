package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

// GoalUsecase manages financial goals keyed by owner email.
type GoalUsecase interface {
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	ListGoals(ctx context.Context, email string) ([]*model.Goal, error)
	UpdateGoal(ctx context.Context, id string, params repository.UpdateGoalParams) (*model.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

type goalUsecase struct {
	userRepo repository.UserRepository
	goalRepo repository.GoalRepository
}

func NewGoalUsecase(userRepo repository.UserRepository, goalRepo repository.GoalRepository) GoalUsecase {
	return &goalUsecase{
		userRepo: userRepo,
		goalRepo: goalRepo,
	}
}

func (u *goalUsecase) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := requireUser(ctx, u.userRepo, goal.Email); err != nil {
		return nil, err
	}

	return u.goalRepo.CreateGoal(ctx, goal)
}

func (u *goalUsecase) ListGoals(ctx context.Context, email string) ([]*model.Goal, error) {
	return u.goalRepo.ListGoalsByEmail(ctx, email)
}

func (u *goalUsecase) UpdateGoal(
	ctx context.Context,
	id string,
	params repository.UpdateGoalParams,
) (*model.Goal, error) {
	goal, err := u.goalRepo.UpdateGoal(ctx, id, params)
	if err != nil {
		if isMissingRecord(err) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}

func (u *goalUsecase) DeleteGoal(ctx context.Context, id string) error {
	if err := u.goalRepo.DeleteGoal(ctx, id); err != nil {
		if isMissingRecord(err) {
			return ErrGoalNotFound
		}
		return err
	}

	return nil
}

func isMissingRecord(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrInvalidID)
}
