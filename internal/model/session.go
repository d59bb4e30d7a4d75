package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session represents a refresh-token grant issued at login. One session is
// created per login call; a user may hold several concurrent sessions.
//
// DeviceID is a best-effort device label (client-supplied, or derived from
// IP and a truncated user agent). It is a deduplication heuristic only and
// must never be treated as an authentication factor.
type Session struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	UserID       bson.ObjectID `bson:"user_id"`
	RefreshToken string        `bson:"refresh_token"`
	ExpiresAt    time.Time     `bson:"expires_at"`
	DeviceID     string        `bson:"device_id"`
	IPAddress    string        `bson:"ip_address"`
	UserAgent    string        `bson:"user_agent"`
	LastActive   time.Time     `bson:"last_active"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
