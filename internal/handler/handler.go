package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
	"github.com/fatima-azeem/authentication-app/shared/auth"
)

// Handler holds the HTTP handlers of the authentication service. Transport
// concerns only: payload binding, validation, cookie handling and mapping
// usecase errors onto status codes.
type Handler struct {
	authUsecase          usecase.AuthUsecase
	otpUsecase           usecase.OtpUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	jwtAuth              auth.JWTAuthenticator
	validate             *validator.Validate
	translator           ut.Translator
	logger               *zerolog.Logger
	cfg                  *config.Config
}

func NewHandler(
	authUsecase usecase.AuthUsecase,
	otpUsecase usecase.OtpUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	jwtAuth auth.JWTAuthenticator,
	logger *zerolog.Logger,
	cfg *config.Config,
) *Handler {
	validate, translator := newValidator()

	return &Handler{
		authUsecase:          authUsecase,
		otpUsecase:           otpUsecase,
		passwordResetUsecase: passwordResetUsecase,
		jwtAuth:              jwtAuth,
		validate:             validate,
		translator:           translator,
		logger:               logger,
		cfg:                  cfg,
	}
}

// decodeAndValidate binds the JSON body into dst and validates it, writing
// the error response itself when binding fails.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			Error(w, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
			return false
		}

		Error(w, http.StatusBadRequest, "invalid request")
		return false
	}

	return true
}

// clientIP resolves the caller address, preferring proxy headers when set.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
