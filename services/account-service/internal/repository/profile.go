package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
)

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	ReplaceProfileByEmail(ctx context.Context, email string, profile *model.Profile) (*model.Profile, error)
	DeleteProfilesByEmail(ctx context.Context, email string) (int64, error)
}

const profileCollection = "profiles"

type profileMongoRepository struct {
	db *mongo.Database
}

func NewProfileMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProfileRepository {
	collection := db.Collection(profileCollection)

	// Not unique: one profile per email is a convention only.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	}

	ensureIndexes(ctx, logger, collection, indexes)

	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.db.Collection(profileCollection).InsertOne(ctx, profile)
	if err != nil {
		return nil, err
	}

	if profile.ID, err = insertedObjectID(result); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *profileMongoRepository) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	result := r.db.Collection(profileCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// ReplaceProfileByEmail overwrites every profile field except email, id and
// creation time.
func (r *profileMongoRepository) ReplaceProfileByEmail(
	ctx context.Context,
	email string,
	profile *model.Profile,
) (*model.Profile, error) {
	update := bson.M{
		"$set": bson.M{
			"photo":         profile.Photo,
			"first_name":    profile.FirstName,
			"last_name":     profile.LastName,
			"username":      profile.Username,
			"mobile_number": profile.MobileNumber,
			"date_of_birth": profile.DateOfBirth,
			"annual_income": profile.AnnualIncome,
			"occupation":    profile.Occupation,
			"address":       profile.Address,
			"state":         profile.State,
			"zip":           profile.Zip,
			"gender":        profile.Gender,
			"bio":           profile.Bio,
			"updated_at":    time.Now(),
		},
	}

	result := r.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var updated model.Profile
	if err := result.Decode(&updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *profileMongoRepository) DeleteProfilesByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.Collection(profileCollection).DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
