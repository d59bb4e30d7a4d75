package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Onboarding holds the profile data collected after registration. One record
// per user, created together with the user and removed with it.
type Onboarding struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      bson.ObjectID `bson:"user_id"`
	FullName    string        `bson:"full_name"`
	Company     *string       `bson:"company,omitempty"`
	PhoneNumber *string       `bson:"phone_number,omitempty"`
	Completed   bool          `bson:"completed"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
