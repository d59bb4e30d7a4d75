package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatima-azeem/authentication-app/internal/rate"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
)

func TestVerifyOtpHandler(t *testing.T) {
	const validBody = `{"email":"jane@example.com","otp":"042137"}`

	t.Run("returns 200 on success", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec := doJSON(t, f.handler.VerifyOtp, http.MethodPost, "/api/v1/verify-otp", validBody)
		require.Equal(t, http.StatusOK, rec.Code)
		requireEnvelope(t, rec, "success", "Email verified successfully.")
	})

	t.Run("maps usecase errors onto status codes", func(t *testing.T) {
		cases := []struct {
			name    string
			err     error
			code    int
			message string
		}{
			{"unknown user", usecase.ErrUserNotFound, http.StatusNotFound, "user not found"},
			{"wrong code", usecase.ErrInvalidOtp, http.StatusBadRequest, "invalid OTP"},
			{"expired code", usecase.ErrOtpExpired, http.StatusBadRequest, "OTP expired"},
		}

		for _, tc := range cases {
			f := newHandlerFixture(t)
			f.otp.verifyErr = tc.err

			rec := doJSON(t, f.handler.VerifyOtp, http.MethodPost, "/api/v1/verify-otp", validBody)
			require.Equal(t, tc.code, rec.Code, tc.name)
			requireEnvelope(t, rec, "error", tc.message)
		}
	})

	t.Run("requires email and otp", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec := doJSON(t, f.handler.VerifyOtp, http.MethodPost, "/api/v1/verify-otp",
			`{"email":"jane@example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResendEmailVerificationOtpHandler(t *testing.T) {
	const validBody = `{"email":"jane@example.com"}`

	t.Run("returns 204 on success", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec := doJSON(t, f.handler.ResendEmailVerificationOtp, http.MethodPost, "/api/v1/resend-email-otp", validBody)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("returns 404 for an unknown user", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.otp.resendErr = usecase.ErrUserNotFound

		rec := doJSON(t, f.handler.ResendEmailVerificationOtp, http.MethodPost, "/api/v1/resend-email-otp", validBody)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 400 when the email is already verified", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.otp.resendErr = usecase.ErrEmailAlreadyVerified

		rec := doJSON(t, f.handler.ResendEmailVerificationOtp, http.MethodPost, "/api/v1/resend-email-otp", validBody)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		requireEnvelope(t, rec, "error", "email already verified")
	})

	t.Run("returns 429 when rate limited", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.otp.resendErr = rate.ErrTooManyRequests

		rec := doJSON(t, f.handler.ResendEmailVerificationOtp, http.MethodPost, "/api/v1/resend-email-otp", validBody)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
