package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the authorization role assigned to a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents a user account. The email is stored lowercased and is
// unique; the password is stored only as an argon2 encoded hash.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	PasswordHash  string        `bson:"password_hash"`
	Role          Role          `bson:"role"`
	EmailVerified bool          `bson:"is_email_verified"`
	TermsAccepted bool          `bson:"is_term_accepted"`
	LastLoginAt   *time.Time    `bson:"last_login_at,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}
