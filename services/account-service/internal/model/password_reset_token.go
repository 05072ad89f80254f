package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PasswordResetToken records an issued reset token by its JTI so that a
// redemption can be marked. Only written when single-use resets are enabled.
type PasswordResetToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	JTI       string        `bson:"jti"`
	Email     string        `bson:"email"`
	Used      bool          `bson:"used"`
	ExpiresAt time.Time     `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
