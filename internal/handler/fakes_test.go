package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
	"github.com/fatima-azeem/authentication-app/shared/auth"
)

// stubAuthUsecase returns canned results so the tests can exercise every
// status-code mapping without a database.
type stubAuthUsecase struct {
	registerErr error
	loginTokens *usecase.Tokens
	loginErr    error
	logoutErr   error
	deleteErr   error

	loginParams  []usecase.LoginParams
	logoutTokens []string
	deletedIDs   []string
}

func (s *stubAuthUsecase) Register(_ context.Context, _ usecase.RegisterParams) error {
	return s.registerErr
}

func (s *stubAuthUsecase) Login(_ context.Context, params usecase.LoginParams) (*usecase.Tokens, error) {
	s.loginParams = append(s.loginParams, params)
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginTokens, nil
}

func (s *stubAuthUsecase) Logout(_ context.Context, refreshToken string) error {
	s.logoutTokens = append(s.logoutTokens, refreshToken)
	return s.logoutErr
}

func (s *stubAuthUsecase) DeleteAccount(_ context.Context, userID string) error {
	s.deletedIDs = append(s.deletedIDs, userID)
	return s.deleteErr
}

type stubOtpUsecase struct {
	verifyErr error
	resendErr error
}

func (s *stubOtpUsecase) VerifyEmailOtp(_ context.Context, _, _ string) error {
	return s.verifyErr
}

func (s *stubOtpUsecase) ResendEmailVerificationOtp(_ context.Context, _ string) error {
	return s.resendErr
}

type stubPasswordResetUsecase struct {
	requestErr error
	verifyErr  error
	resetErr   error
	resendErr  error

	requestedEmails []string
}

func (s *stubPasswordResetUsecase) RequestPasswordReset(_ context.Context, email string) error {
	s.requestedEmails = append(s.requestedEmails, email)
	return s.requestErr
}

func (s *stubPasswordResetUsecase) VerifyResetCode(_ context.Context, _ string) error {
	return s.verifyErr
}

func (s *stubPasswordResetUsecase) ResetPassword(_ context.Context, _, _ string) error {
	return s.resetErr
}

func (s *stubPasswordResetUsecase) ResendPasswordResetOtp(_ context.Context, _ string) error {
	return s.resendErr
}

type handlerFixture struct {
	auth          *stubAuthUsecase
	otp           *stubOtpUsecase
	passwordReset *stubPasswordResetUsecase
	cfg           *config.Config
	handler       *Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		auth:          &stubAuthUsecase{},
		otp:           &stubOtpUsecase{},
		passwordReset: &stubPasswordResetUsecase{},
		cfg: &config.Config{
			Token: config.TokenConfig{
				Issuer:                "authentication-app",
				AccessTokenSecret:     "test-access-secret",
				RefreshTokenSecret:    "test-refresh-secret",
				AccessTokenExpiresIn:  30 * time.Minute,
				RefreshTokenExpiresIn: 7 * 24 * time.Hour,
			},
		},
	}

	logger := zerolog.Nop()
	f.handler = NewHandler(
		f.auth,
		f.otp,
		f.passwordReset,
		auth.NewJWTAuthenticator(f.cfg.Token.Issuer, f.cfg.Token.Issuer),
		&logger,
		f.cfg,
	)

	return f
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	return rec
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status, message string) {
	t.Helper()

	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"status":"`+status+`"`)
	if message != "" {
		require.Contains(t, rec.Body.String(), message)
	}
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
