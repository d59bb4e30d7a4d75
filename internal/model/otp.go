package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OtpType tags an OTP with the flow it belongs to. Password reset has its
// own entity (PasswordResetToken), so only the email-verification flow mints
// OTP documents.
type OtpType string

const OtpTypeEmailVerification OtpType = "EMAIL_VERIFICATION"

// Otp is a short-lived 6-digit verification code. A code is single use:
// successful verification deletes the record, and issuing a new code for the
// same user and type purges the previous ones.
type Otp struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Code      string        `bson:"code"`
	Type      OtpType       `bson:"type"`
	ExpiresAt time.Time     `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
}
