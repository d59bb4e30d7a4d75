package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/model"
	"github.com/fatima-azeem/authentication-app/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Token: config.TokenConfig{
			Issuer:                "authentication-app",
			AccessTokenSecret:     "test-access-secret",
			RefreshTokenSecret:    "test-refresh-secret",
			AccessTokenExpiresIn:  30 * time.Minute,
			RefreshTokenExpiresIn: 7 * 24 * time.Hour,
		},
		OtpExpiresIn:        10 * time.Minute,
		ResetTokenExpiresIn: time.Hour,
	}
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

// --- user repository ---

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)

	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id bson.ObjectID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id bson.ObjectID,
	params repository.UpdateUserParams,
) (*model.User, error) {
	for _, u := range f.users {
		if u.ID != id {
			continue
		}

		if params.PasswordHash != nil {
			u.PasswordHash = *params.PasswordHash
		}
		if params.EmailVerified != nil {
			u.EmailVerified = *params.EmailVerified
		}
		if params.LastLoginAt != nil {
			u.LastLoginAt = params.LastLoginAt
		}
		u.UpdatedAt = time.Now()

		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id bson.ObjectID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// --- session repository ---

type fakeSessionRepo struct {
	sessions []*model.Session
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session *model.Session) (*model.Session, error) {
	session.ID = bson.NewObjectID()
	now := time.Now()
	session.LastActive = now
	session.CreatedAt = now
	session.UpdatedAt = now
	f.sessions = append(f.sessions, session)

	return session, nil
}

func (f *fakeSessionRepo) GetSessionByToken(_ context.Context, refreshToken string) (*model.Session, error) {
	for _, s := range f.sessions {
		if s.RefreshToken == refreshToken {
			return s, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) DeleteSessionByToken(_ context.Context, refreshToken string) error {
	for i, s := range f.sessions {
		if s.RefreshToken == refreshToken {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteSessionsByUserID(_ context.Context, userID bson.ObjectID) error {
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

// --- otp repository ---

type fakeOtpRepo struct {
	otps []*model.Otp
}

func (f *fakeOtpRepo) CreateOtp(_ context.Context, otp *model.Otp) (*model.Otp, error) {
	otp.ID = bson.NewObjectID()
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	f.otps = append(f.otps, otp)

	return otp, nil
}

func (f *fakeOtpRepo) GetLatestOtp(
	_ context.Context,
	userID bson.ObjectID,
	otpType model.OtpType,
	code string,
) (*model.Otp, error) {
	var latest *model.Otp
	for _, o := range f.otps {
		if o.UserID != userID || o.Type != otpType || o.Code != code {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}

	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	return latest, nil
}

func (f *fakeOtpRepo) DeleteOtp(_ context.Context, id bson.ObjectID) error {
	for i, o := range f.otps {
		if o.ID == id {
			f.otps = append(f.otps[:i], f.otps[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeOtpRepo) DeleteOtpsByUserAndType(_ context.Context, userID bson.ObjectID, otpType model.OtpType) error {
	kept := f.otps[:0]
	for _, o := range f.otps {
		if o.UserID != userID || o.Type != otpType {
			kept = append(kept, o)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeOtpRepo) DeleteOtpsByUserID(_ context.Context, userID bson.ObjectID) error {
	kept := f.otps[:0]
	for _, o := range f.otps {
		if o.UserID != userID {
			kept = append(kept, o)
		}
	}
	f.otps = kept
	return nil
}

// --- password reset token repository ---

type fakeTokenRepo struct {
	tokens []*model.PasswordResetToken
}

func (f *fakeTokenRepo) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	token.ID = bson.NewObjectID()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	token.UpdatedAt = token.CreatedAt
	token.Used = false
	f.tokens = append(f.tokens, token)

	return token, nil
}

func (f *fakeTokenRepo) GetLatestTokenByValue(_ context.Context, value string) (*model.PasswordResetToken, error) {
	var latest *model.PasswordResetToken
	for _, tok := range f.tokens {
		if tok.Token != value {
			continue
		}
		if latest == nil || tok.CreatedAt.After(latest.CreatedAt) {
			latest = tok
		}
	}

	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	return latest, nil
}

func (f *fakeTokenRepo) MarkTokenUsed(_ context.Context, id bson.ObjectID) error {
	for _, tok := range f.tokens {
		if tok.ID == id {
			tok.Used = true
			tok.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteTokensByUserID(_ context.Context, userID bson.ObjectID) error {
	kept := f.tokens[:0]
	for _, tok := range f.tokens {
		if tok.UserID != userID {
			kept = append(kept, tok)
		}
	}
	f.tokens = kept
	return nil
}

// --- onboarding repository ---

type fakeOnboardingRepo struct {
	records []*model.Onboarding
}

func (f *fakeOnboardingRepo) CreateOnboarding(
	_ context.Context,
	onboarding *model.Onboarding,
) (*model.Onboarding, error) {
	onboarding.ID = bson.NewObjectID()
	now := time.Now()
	onboarding.CreatedAt = now
	onboarding.UpdatedAt = now
	f.records = append(f.records, onboarding)

	return onboarding, nil
}

func (f *fakeOnboardingRepo) GetOnboardingByUserID(
	_ context.Context,
	userID bson.ObjectID,
) (*model.Onboarding, error) {
	for _, rec := range f.records {
		if rec.UserID == userID {
			return rec, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeOnboardingRepo) DeleteOnboardingByUserID(_ context.Context, userID bson.ObjectID) error {
	kept := f.records[:0]
	for _, rec := range f.records {
		if rec.UserID != userID {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

// --- transactor, notifier, limiter ---

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type sentNotification struct {
	email string
	code  string
}

type fakeNotifier struct {
	verificationSent []sentNotification
	resetSent        []sentNotification
	err              error
}

func (f *fakeNotifier) SendVerificationCode(email, code string) error {
	if f.err != nil {
		return f.err
	}
	f.verificationSent = append(f.verificationSent, sentNotification{email: email, code: code})
	return nil
}

func (f *fakeNotifier) SendPasswordResetCode(email, code string) error {
	if f.err != nil {
		return f.err
	}
	f.resetSent = append(f.resetSent, sentNotification{email: email, code: code})
	return nil
}

type fakeLimiter struct {
	calls []string
	err   error
}

func (f *fakeLimiter) Allow(_ context.Context, purpose, target string) error {
	f.calls = append(f.calls, purpose+":"+target)
	return f.err
}
