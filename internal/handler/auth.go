package handler

import (
	"errors"
	"net/http"

	"github.com/fatima-azeem/authentication-app/internal/payload"
	"github.com/fatima-azeem/authentication-app/internal/rate"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
)

const refreshTokenCookie = "refresh_token"

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			Error(w, http.StatusConflict, "email already registered")
		case errors.Is(err, usecase.ErrTermsNotAccepted):
			Error(w, http.StatusBadRequest, "terms and conditions must be accepted")
		default:
			h.logger.Error().Err(err).Msg("failed to register user")
			Error(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	JSON(w, http.StatusCreated, payload.MessageResponse{
		Message: "Registration successful. Please verify your email.",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:     req.Email,
		Password:  req.Password,
		DeviceID:  req.DeviceID,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		// A missing account and a wrong password produce the exact same
		// response, so callers cannot enumerate registered emails.
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	JSON(w, http.StatusOK, payload.LoginResponse{
		AccessToken: tokens.AccessToken,
		TokenType:   "bearer",
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		if err := h.authUsecase.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error().Err(err).Msg("failed to revoke session")
			Error(w, http.StatusInternalServerError, "something went wrong")
			return
		}
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.authUsecase.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			Error(w, http.StatusNotFound, "user not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete account")
		Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// setRefreshCookie delivers the refresh token the only way it ever leaves
// the server: an HTTP-only, secure, SameSite=Lax cookie.
func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.Token.RefreshTokenExpiresIn.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// rateLimitedOr maps limiter rejections to 429 and everything else to 500.
func (h *Handler) rateLimitedOr(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, rate.ErrTooManyRequests) {
		Error(w, http.StatusTooManyRequests, "too many requests; try again later")
		return
	}

	h.logger.Error().Err(err).Msg(logMsg)
	Error(w, http.StatusInternalServerError, "something went wrong")
}
