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

// TransactionRepository defines the interface for transaction storage.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	ListTransactionsByEmail(ctx context.Context, email string) ([]*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	DeleteTransactionsByEmail(ctx context.Context, email string) (int64, error)
}

const transactionCollection = "transactions"

type transactionMongoRepository struct {
	db *mongo.Database
}

func NewTransactionMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) TransactionRepository {
	collection := db.Collection(transactionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}},
		},
	}

	ensureIndexes(ctx, logger, collection, indexes)

	return &transactionMongoRepository{db: db}
}

func (r *transactionMongoRepository) CreateTransaction(
	ctx context.Context,
	tx *model.Transaction,
) (*model.Transaction, error) {
	now := time.Now()
	tx.CreatedAt = now
	if tx.Date.IsZero() {
		tx.Date = now
	}

	result, err := r.db.Collection(transactionCollection).InsertOne(ctx, tx)
	if err != nil {
		return nil, err
	}

	if tx.ID, err = insertedObjectID(result); err != nil {
		return nil, err
	}

	return tx, nil
}

func (r *transactionMongoRepository) ListTransactionsByEmail(
	ctx context.Context,
	email string,
) ([]*model.Transaction, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.db.Collection(transactionCollection).Find(ctx, bson.M{"email": email}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	transactions := []*model.Transaction{}
	for cursor.Next(ctx) {
		var tx model.Transaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionMongoRepository) DeleteTransaction(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(transactionCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *transactionMongoRepository) DeleteTransactionsByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.Collection(transactionCollection).DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
