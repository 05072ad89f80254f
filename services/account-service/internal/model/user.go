package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a stored credential. Email is the identity key and the join
// key for every dependent record.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
