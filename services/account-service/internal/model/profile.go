package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile holds the personal and financial identity of a user.
type Profile struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	Photo        string        `bson:"photo"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	Username     string        `bson:"username"`
	MobileNumber string        `bson:"mobile_number"`
	DateOfBirth  time.Time     `bson:"date_of_birth"`
	AnnualIncome float64       `bson:"annual_income"`
	Occupation   string        `bson:"occupation"`
	Address      string        `bson:"address"`
	State        string        `bson:"state"`
	Zip          string        `bson:"zip"`
	Gender       string        `bson:"gender"`
	Bio          string        `bson:"bio"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
