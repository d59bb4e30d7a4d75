package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/handler"
)

// Server wraps the HTTP server of the authentication service.
type Server struct {
	httpServer *http.Server
	logger     *zerolog.Logger
	cfg        *config.Config
}

// New assembles the router and builds the server.
func New(h *handler.Handler, logger *zerolog.Logger, cfg *config.Config) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: newRouter(h, logger),
		},
		logger: logger,
		cfg:    cfg,
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func newRouter(h *handler.Handler, logger *zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/verify-otp", h.VerifyOtp)
		r.Post("/request-password-reset", h.RequestPasswordReset)
		r.Post("/verify-password-reset-otp", h.VerifyPasswordResetOtp)
		r.Post("/reset-password", h.ResetPassword)
		r.Post("/resend-email-verification-otp", h.ResendEmailVerificationOtp)
		r.Post("/resend-password-reset-otp", h.ResendPasswordResetOtp)

		r.With(h.RequireAuth).Delete("/account", h.DeleteAccount)
	})

	return r
}
