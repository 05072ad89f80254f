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

// PasswordResetTokenRepository defines the interface for password reset token operations.
type PasswordResetTokenRepository interface {
	// CreateToken records a newly issued reset token.
	CreateToken(ctx context.Context, token *model.PasswordResetToken) (*model.PasswordResetToken, error)

	// ConsumeToken atomically marks an unused token as used. It reports false
	// when the token is unknown or was already used.
	ConsumeToken(ctx context.Context, jti string) (bool, error)

	// InvalidateEmailTokens marks all unused tokens for an email as used.
	InvalidateEmailTokens(ctx context.Context, email string) error

	// DeleteTokensByEmail removes every token issued for an email.
	DeleteTokensByEmail(ctx context.Context, email string) (int64, error)
}

const passwordResetTokenCollection = "password_reset_tokens"

type passwordResetTokenMongoRepository struct {
	db *mongo.Database
}

// NewPasswordResetTokenMongoRepository creates a new MongoDB repository for password reset tokens.
func NewPasswordResetTokenMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PasswordResetTokenRepository {
	collection := db.Collection(passwordResetTokenCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jti", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	ensureIndexes(ctx, logger, collection, indexes)

	return &passwordResetTokenMongoRepository{
		db: db,
	}
}

func (r *passwordResetTokenMongoRepository) CreateToken(
	ctx context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	now := time.Now()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.Used = false

	result, err := r.db.Collection(passwordResetTokenCollection).InsertOne(ctx, token)
	if err != nil {
		return nil, err
	}

	if token.ID, err = insertedObjectID(result); err != nil {
		return nil, err
	}

	return token, nil
}

func (r *passwordResetTokenMongoRepository) ConsumeToken(ctx context.Context, jti string) (bool, error) {
	filter := bson.M{
		"jti":  jti,
		"used": false,
	}
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.db.Collection(passwordResetTokenCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

func (r *passwordResetTokenMongoRepository) InvalidateEmailTokens(ctx context.Context, email string) error {
	filter := bson.M{
		"email": email,
		"used":  false,
	}
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	_, err := r.db.Collection(passwordResetTokenCollection).UpdateMany(ctx, filter, update)
	return err
}

func (r *passwordResetTokenMongoRepository) DeleteTokensByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.Collection(passwordResetTokenCollection).DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
