package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrTooManyRequests is returned when a target has exceeded the allowed
// number of OTP requests inside the current window.
var ErrTooManyRequests = errors.New("too many code requests; try again later")

// Limiter throttles OTP issuance per (purpose, target) using a redis counter
// with a rolling window. It protects the issue and resend paths from abuse;
// it is not an authentication control.
type Limiter struct {
	client *redis.Client
	logger *zerolog.Logger
	window time.Duration
	max    int
}

// NewLimiter creates a Limiter counting at most max requests per window.
func NewLimiter(client *redis.Client, logger *zerolog.Logger, window time.Duration, max int) *Limiter {
	return &Limiter{
		client: client,
		logger: logger,
		window: window,
		max:    max,
	}
}

// Allow records a request for target and returns ErrTooManyRequests once the
// window budget is exhausted. A redis failure is logged and the request is
// allowed: an unavailable limiter backend must never block authentication.
func (l *Limiter) Allow(ctx context.Context, purpose, target string) error {
	key := fmt.Sprintf("otp:count:%s:%s", purpose, target)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn().Err(err).Str("purpose", purpose).Msg("otp rate limiter unavailable; allowing request")
		return nil
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("purpose", purpose).Msg("failed to set otp rate window expiry")
		}
	}

	if int(count) > l.max {
		return ErrTooManyRequests
	}

	return nil
}
