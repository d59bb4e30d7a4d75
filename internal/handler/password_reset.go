package handler

import (
	"errors"
	"net/http"

	"github.com/fatima-azeem/authentication-app/internal/payload"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
)

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.EmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// Unknown emails succeed silently; the response never reveals whether
	// the account exists.
	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.rateLimitedOr(w, err, "failed to request password reset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) VerifyPasswordResetOtp(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyResetOtpRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.VerifyResetCode(r.Context(), req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetTokenNotFound):
			Error(w, http.StatusBadRequest, "invalid OTP")
		case errors.Is(err, usecase.ErrResetTokenUsed):
			Error(w, http.StatusBadRequest, "OTP already used")
		case errors.Is(err, usecase.ErrResetTokenExpired):
			Error(w, http.StatusBadRequest, "OTP expired")
		default:
			h.logger.Error().Err(err).Msg("failed to verify password reset OTP")
			Error(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	JSON(w, http.StatusOK, payload.MessageResponse{
		Message: "OTP verified successfully. You can now reset your password.",
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		// Not-found, used and expired collapse into one deliberately vague
		// message on the consuming endpoint.
		if errors.Is(err, usecase.ErrResetTokenNotFound) ||
			errors.Is(err, usecase.ErrResetTokenUsed) ||
			errors.Is(err, usecase.ErrResetTokenExpired) {
			Error(w, http.StatusBadRequest, "invalid or expired token")
			return
		}

		h.logger.Error().Err(err).Msg("failed to reset password")
		Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	JSON(w, http.StatusOK, payload.MessageResponse{
		Message: "Password reset successful.",
	})
}

func (h *Handler) ResendPasswordResetOtp(w http.ResponseWriter, r *http.Request) {
	var req payload.EmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// Same anti-enumeration rule as RequestPasswordReset.
	if err := h.passwordResetUsecase.ResendPasswordResetOtp(r.Context(), req.Email); err != nil {
		h.rateLimitedOr(w, err, "failed to resend password reset OTP")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
