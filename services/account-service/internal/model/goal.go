package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Goal is a financial goal owned by the user with the given email.
type Goal struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Email       string        `bson:"email"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	TargetDate  time.Time     `bson:"target_date"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
