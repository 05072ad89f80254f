package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Transaction is a single income or expense record.
type Transaction struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	Email           string        `bson:"email"`
	Type            string        `bson:"type"`
	Amount          float64       `bson:"amount"`
	TransactionType string        `bson:"transaction_type"`
	Date            time.Time     `bson:"date"`
	CreatedAt       time.Time     `bson:"created_at"`
}
