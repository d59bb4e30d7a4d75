package handler

import (
	"errors"
	"net/http"

	"github.com/fatima-azeem/authentication-app/internal/payload"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
)

func (h *Handler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyOtpRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.otpUsecase.VerifyEmailOtp(r.Context(), req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, usecase.ErrInvalidOtp):
			Error(w, http.StatusBadRequest, "invalid OTP")
		case errors.Is(err, usecase.ErrOtpExpired):
			Error(w, http.StatusBadRequest, "OTP expired")
		default:
			h.logger.Error().Err(err).Msg("failed to verify OTP")
			Error(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	JSON(w, http.StatusOK, payload.MessageResponse{
		Message: "Email verified successfully.",
	})
}

func (h *Handler) ResendEmailVerificationOtp(w http.ResponseWriter, r *http.Request) {
	var req payload.EmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.otpUsecase.ResendEmailVerificationOtp(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, usecase.ErrEmailAlreadyVerified):
			Error(w, http.StatusBadRequest, "email already verified")
		default:
			h.rateLimitedOr(w, err, "failed to resend verification OTP")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
