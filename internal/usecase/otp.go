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

// OtpUsecase defines the business logic for email-verification codes.
//
// The lifecycle of a code is: issued, then exactly one of verified (deleted),
// expired (rejected forever) or superseded (purged by a newer issue). An
// expired code counts as consumed and is never revived.
type OtpUsecase interface {
	// VerifyEmailOtp checks the supplied code and, when valid, marks the
	// user's email verified and consumes the code.
	VerifyEmailOtp(ctx context.Context, email, code string) error

	// ResendEmailVerificationOtp supersedes any pending code with a fresh
	// one and triggers delivery.
	ResendEmailVerificationOtp(ctx context.Context, email string) error
}

var (
	ErrInvalidOtp           = errors.New("invalid OTP")
	ErrOtpExpired           = errors.New("OTP expired")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

const otpPurposeEmailVerification = "email_verification"

type otpUsecase struct {
	userRepo   repository.UserRepository
	otpRepo    repository.OtpRepository
	transactor repository.Transactor
	notifier   Notifier
	limiter    RequestLimiter
	logger     *zerolog.Logger
	cfg        *config.Config
}

func NewOtpUsecase(
	userRepo repository.UserRepository,
	otpRepo repository.OtpRepository,
	transactor repository.Transactor,
	notifier Notifier,
	limiter RequestLimiter,
	logger *zerolog.Logger,
	cfg *config.Config,
) OtpUsecase {
	return &otpUsecase{
		userRepo:   userRepo,
		otpRepo:    otpRepo,
		transactor: transactor,
		notifier:   notifier,
		limiter:    limiter,
		logger:     logger,
		cfg:        cfg,
	}
}

func (u *otpUsecase) VerifyEmailOtp(ctx context.Context, email, code string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	// Exact string match preserves leading zeros; newest-by-created_at wins
	// if stale codes remain.
	otp, err := u.otpRepo.GetLatestOtp(ctx, user.ID, model.OtpTypeEmailVerification, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidOtp
		}
		return err
	}

	if otp.ExpiresAt.Before(time.Now()) {
		return ErrOtpExpired
	}

	verified := true
	return u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.userRepo.UpdateUser(ctx, user.ID, repository.UpdateUserParams{
			EmailVerified: &verified,
		}); err != nil {
			return err
		}

		return u.otpRepo.DeleteOtp(ctx, otp.ID)
	})
}

func (u *otpUsecase) ResendEmailVerificationOtp(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	if user.EmailVerified {
		return ErrEmailAlreadyVerified
	}

	if u.limiter != nil {
		if err := u.limiter.Allow(ctx, otpPurposeEmailVerification, email); err != nil {
			return err
		}
	}

	code, err := security.GenerateNumericCode()
	if err != nil {
		return err
	}

	// Old codes for the same user and type are purged; the newly issued code
	// becomes the only verifiable one.
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.otpRepo.DeleteOtpsByUserAndType(ctx, user.ID, model.OtpTypeEmailVerification); err != nil {
			return err
		}

		_, err := u.otpRepo.CreateOtp(ctx, &model.Otp{
			UserID:    user.ID,
			Code:      code,
			Type:      model.OtpTypeEmailVerification,
			ExpiresAt: time.Now().Add(u.cfg.OtpExpiresIn),
		})
		return err
	})
	if err != nil {
		return err
	}

	if err := u.notifier.SendVerificationCode(email, code); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("failed to send verification email")
	}

	return nil
}
