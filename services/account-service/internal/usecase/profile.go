package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

// ProfileUsecase manages user profiles. Writes require an existing credential.
type ProfileUsecase interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, email string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
}

type profileUsecase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewProfileUsecase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) ProfileUsecase {
	return &profileUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (u *profileUsecase) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := requireUser(ctx, u.userRepo, profile.Email); err != nil {
		return nil, err
	}

	return u.profileRepo.CreateProfile(ctx, profile)
}

func (u *profileUsecase) GetProfile(ctx context.Context, email string) (*model.Profile, error) {
	profile, err := u.profileRepo.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := requireUser(ctx, u.userRepo, profile.Email); err != nil {
		return nil, err
	}

	updated, err := u.profileRepo.ReplaceProfileByEmail(ctx, profile.Email, profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return updated, nil
}

func requireUser(ctx context.Context, userRepo repository.UserRepository, email string) error {
	if _, err := userRepo.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}
