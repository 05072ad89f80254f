package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
)

// GoalRepository defines the interface for goal storage.
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	ListGoalsByEmail(ctx context.Context, email string) ([]*model.Goal, error)
	UpdateGoal(ctx context.Context, id string, params UpdateGoalParams) (*model.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	DeleteGoalsByEmail(ctx context.Context, email string) (int64, error)
}

// UpdateGoalParams defines the optional parameters for updating a goal.
// Only the fields that are not nil will be updated.
type UpdateGoalParams struct {
	Title       *string
	Description *string
	TargetDate  *time.Time
}

const goalCollection = "goals"

type goalMongoRepository struct {
	db *mongo.Database
}

func NewGoalMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) GoalRepository {
	collection := db.Collection(goalCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "target_date", Value: 1}},
		},
	}

	ensureIndexes(ctx, logger, collection, indexes)

	return &goalMongoRepository{db: db}
}

func (r *goalMongoRepository) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	result, err := r.db.Collection(goalCollection).InsertOne(ctx, goal)
	if err != nil {
		return nil, err
	}

	if goal.ID, err = insertedObjectID(result); err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalMongoRepository) ListGoalsByEmail(ctx context.Context, email string) ([]*model.Goal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "target_date", Value: 1}})

	cursor, err := r.db.Collection(goalCollection).Find(ctx, bson.M{"email": email}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []*model.Goal{}
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalMongoRepository) UpdateGoal(ctx context.Context, id string, params UpdateGoalParams) (*model.Goal, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.TargetDate != nil {
		updateMap["target_date"] = *params.TargetDate
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no goal fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(goalCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var goal model.Goal
	if err := result.Decode(&goal); err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *goalMongoRepository) DeleteGoal(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(goalCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *goalMongoRepository) DeleteGoalsByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.Collection(goalCollection).DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
