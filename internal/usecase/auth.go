package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/model"
	"github.com/fatima-azeem/authentication-app/internal/repository"
	"github.com/fatima-azeem/authentication-app/shared/auth"
	"github.com/fatima-azeem/authentication-app/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) error
	Login(ctx context.Context, params LoginParams) (*Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	FullName      string
	Email         string
	Password      string
	TermsAccepted bool
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email     string
	Password  string
	DeviceID  string
	IPAddress string
	UserAgent string
}

var (
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrTermsNotAccepted   = errors.New("terms and conditions must be accepted")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type authUsecase struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	otpRepo        repository.OtpRepository
	onboardingRepo repository.OnboardingRepository
	tokenRepo      repository.PasswordResetTokenRepository
	transactor     repository.Transactor
	jwtAuth        auth.JWTAuthenticator
	notifier       Notifier
	logger         *zerolog.Logger
	cfg            *config.Config
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	otpRepo repository.OtpRepository,
	onboardingRepo repository.OnboardingRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	transactor repository.Transactor,
	jwtAuth auth.JWTAuthenticator,
	notifier Notifier,
	logger *zerolog.Logger,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		otpRepo:        otpRepo,
		onboardingRepo: onboardingRepo,
		tokenRepo:      tokenRepo,
		transactor:     transactor,
		jwtAuth:        jwtAuth,
		notifier:       notifier,
		logger:         logger,
		cfg:            cfg,
	}
}

// Register creates the user, its onboarding profile and an email-verification
// OTP in one transaction, then triggers delivery of the code. A failure at
// any step leaves no partial user record.
func (u *authUsecase) Register(ctx context.Context, params RegisterParams) error {
	email := normalizeEmail(params.Email)

	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if !params.TermsAccepted {
		return ErrTermsNotAccepted
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return err
	}

	code, err := security.GenerateNumericCode()
	if err != nil {
		return err
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := u.userRepo.CreateUser(ctx, &model.User{
			Email:         email,
			PasswordHash:  passwordHash,
			Role:          model.RoleUser,
			TermsAccepted: true,
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrUserAlreadyExists
			}
			return err
		}

		if _, err := u.onboardingRepo.CreateOnboarding(ctx, &model.Onboarding{
			UserID:   user.ID,
			FullName: params.FullName,
		}); err != nil {
			return err
		}

		if _, err := u.otpRepo.CreateOtp(ctx, &model.Otp{
			UserID:    user.ID,
			Code:      code,
			Type:      model.OtpTypeEmailVerification,
			ExpiresAt: time.Now().Add(u.cfg.OtpExpiresIn),
		}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Delivery failure never rolls back the committed registration; the user
	// can request a resend.
	if err := u.notifier.SendVerificationCode(email, code); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("failed to send verification email")
	}

	return nil
}

// Login verifies the credentials and opens a refresh session. A missing user
// and a wrong password return the same ErrInvalidCredentials so the two are
// indistinguishable to the caller.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*Tokens, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := u.jwtAuth.GenerateToken(
		user.ID.Hex(),
		uuid.NewString(),
		u.cfg.Token.AccessTokenSecret,
		u.cfg.Token.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	// The refresh token carries a high-entropy jti so the stored token value
	// is unique per session.
	refreshJTI, err := security.GenerateOpaqueToken()
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.jwtAuth.GenerateToken(
		user.ID.Hex(),
		refreshJTI,
		u.cfg.Token.RefreshTokenSecret,
		u.cfg.Token.RefreshTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	deviceID := params.DeviceID
	if deviceID == "" {
		deviceID = fallbackDeviceID(params.IPAddress, params.UserAgent)
	}

	if _, err := u.sessionRepo.CreateSession(ctx, &model.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(u.cfg.Token.RefreshTokenExpiresIn),
		DeviceID:     deviceID,
		IPAddress:    params.IPAddress,
		UserAgent:    params.UserAgent,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	if _, err := u.userRepo.UpdateUser(ctx, user.ID, repository.UpdateUserParams{
		LastLoginAt: &now,
	}); err != nil {
		return nil, err
	}

	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the session holding the refresh token. Revoking an absent
// or already-revoked token is a no-op.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.sessionRepo.DeleteSessionByToken(ctx, refreshToken)
}

// DeleteAccount removes the user and everything it owns: sessions, OTPs,
// reset tokens and the onboarding profile, in one transaction.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID string) error {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	return u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.sessionRepo.DeleteSessionsByUserID(ctx, id); err != nil {
			return err
		}
		if err := u.otpRepo.DeleteOtpsByUserID(ctx, id); err != nil {
			return err
		}
		if err := u.tokenRepo.DeleteTokensByUserID(ctx, id); err != nil {
			return err
		}
		if err := u.onboardingRepo.DeleteOnboardingByUserID(ctx, id); err != nil {
			return err
		}

		if err := u.userRepo.DeleteUser(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrUserNotFound
			}
			return err
		}

		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// fallbackDeviceID labels a session when the client supplies no device id.
// It is a deduplication heuristic, not an authentication factor. The user
// agent is truncated on a rune boundary so the label stays valid UTF-8.
func fallbackDeviceID(ipAddress, userAgent string) string {
	if runes := []rune(userAgent); len(runes) > 20 {
		userAgent = string(runes[:20])
	}
	return ipAddress + "-" + userAgent
}
