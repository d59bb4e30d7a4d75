package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/model"
	"github.com/fatima-azeem/authentication-app/internal/repository"
	"github.com/fatima-azeem/authentication-app/shared/security"
)

// PasswordResetUsecase defines the business logic for the password reset
// token lifecycle. Unknown emails are answered silently so the flow leaks no
// signal about which accounts exist.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a reset code for the account, if it exists.
	RequestPasswordReset(ctx context.Context, email string) error

	// VerifyResetCode checks that the newest token holding this value is
	// unused and unexpired, without consuming it.
	VerifyResetCode(ctx context.Context, code string) error

	// ResetPassword replaces the user's password and marks the token used,
	// atomically.
	ResetPassword(ctx context.Context, code, newPassword string) error

	// ResendPasswordResetOtp purges the user's previous reset tokens and
	// issues a fresh one.
	ResendPasswordResetOtp(ctx context.Context, email string) error
}

var (
	ErrResetTokenNotFound = errors.New("password reset token not found")
	ErrResetTokenUsed     = errors.New("password reset token has already been used")
	ErrResetTokenExpired  = errors.New("password reset token has expired")
)

const otpPurposePasswordReset = "password_reset"

type passwordResetUsecase struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.PasswordResetTokenRepository
	transactor repository.Transactor
	notifier   Notifier
	limiter    RequestLimiter
	logger     *zerolog.Logger
	cfg        *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	transactor repository.Transactor,
	notifier Notifier,
	limiter RequestLimiter,
	logger *zerolog.Logger,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		transactor: transactor,
		notifier:   notifier,
		limiter:    limiter,
		logger:     logger,
		cfg:        cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	// Throttle before the lookup so a known and an unknown address behave
	// identically under pressure; a per-outcome limiter would leak whether
	// the account exists.
	if u.limiter != nil {
		if err := u.limiter.Allow(ctx, otpPurposePasswordReset, email); err != nil {
			return err
		}
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email
			// does not exist.
			return nil
		}
		return err
	}

	code, err := security.GenerateNumericCode()
	if err != nil {
		return err
	}

	if _, err := u.tokenRepo.CreateToken(ctx, &model.PasswordResetToken{
		UserID:    user.ID,
		Token:     code,
		ExpiresAt: time.Now().Add(u.cfg.ResetTokenExpiresIn),
	}); err != nil {
		return err
	}

	if err := u.notifier.SendPasswordResetCode(email, code); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("failed to send password reset email")
	}

	return nil
}

func (u *passwordResetUsecase) VerifyResetCode(ctx context.Context, code string) error {
	_, err := u.findValidToken(ctx, code)
	return err
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, code, newPassword string) error {
	token, err := u.findValidToken(ctx, code)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// One transaction: a crash cannot leave the token used without the
	// password changed, or the reverse.
	return u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.userRepo.UpdateUser(ctx, token.UserID, repository.UpdateUserParams{
			PasswordHash: &passwordHash,
		}); err != nil {
			return err
		}

		return u.tokenRepo.MarkTokenUsed(ctx, token.ID)
	})
}

func (u *passwordResetUsecase) ResendPasswordResetOtp(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	// Same ordering as RequestPasswordReset: throttle first, so the limiter
	// never becomes an existence oracle.
	if u.limiter != nil {
		if err := u.limiter.Allow(ctx, otpPurposePasswordReset, email); err != nil {
			return err
		}
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Silent on unknown email, same as RequestPasswordReset.
			return nil
		}
		return err
	}

	code, err := security.GenerateNumericCode()
	if err != nil {
		return err
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.tokenRepo.DeleteTokensByUserID(ctx, user.ID); err != nil {
			return err
		}

		_, err := u.tokenRepo.CreateToken(ctx, &model.PasswordResetToken{
			UserID:    user.ID,
			Token:     code,
			ExpiresAt: time.Now().Add(u.cfg.ResetTokenExpiresIn),
		})
		return err
	})
	if err != nil {
		return err
	}

	if err := u.notifier.SendPasswordResetCode(email, code); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("failed to send password reset email")
	}

	return nil
}

// findValidToken selects the newest token holding the given value and checks
// used and expiry status. Used tokens stay inert even before expiry.
func (u *passwordResetUsecase) findValidToken(ctx context.Context, code string) (*model.PasswordResetToken, error) {
	token, err := u.tokenRepo.GetLatestTokenByValue(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}

	if token.Used {
		return nil, ErrResetTokenUsed
	}

	if time.Now().After(token.ExpiresAt) {
		return nil, ErrResetTokenExpired
	}

	return token, nil
}
