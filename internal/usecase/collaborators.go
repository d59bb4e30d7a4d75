package usecase

import "context"

// Notifier delivers one-time codes to users. Delivery runs after the state
// change has committed; a delivery failure is logged by the caller and never
// rolls the state change back, since the user can always request a resend.
type Notifier interface {
	SendVerificationCode(email, code string) error
	SendPasswordResetCode(email, code string) error
}

// RequestLimiter throttles code issuance per purpose and target. A nil
// limiter disables throttling.
type RequestLimiter interface {
	Allow(ctx context.Context, purpose, target string) error
}

// Tokens is the pair issued on a successful login.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}
