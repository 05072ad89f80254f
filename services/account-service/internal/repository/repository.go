package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrInvalidID is returned when a record id is not a valid ObjectID.
var ErrInvalidID = errors.New("invalid record id")

func parseObjectID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}
	return objectID, nil
}

// ensureIndexes creates the collection indexes. Failure is fatal.
func ensureIndexes(ctx context.Context, logger *zerolog.Logger, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Str("collection", collection.Name()).Msg("failed to create indexes")
	}
}

func insertedObjectID(result *mongo.InsertOneResult) (bson.ObjectID, error) {
	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return objectID, nil
}
