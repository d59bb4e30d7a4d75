package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fatima-azeem/authentication-app/internal/config"
	"github.com/fatima-azeem/authentication-app/internal/handler"
	"github.com/fatima-azeem/authentication-app/internal/rate"
	"github.com/fatima-azeem/authentication-app/internal/repository"
	"github.com/fatima-azeem/authentication-app/internal/server"
	"github.com/fatima-azeem/authentication-app/internal/usecase"
	"github.com/fatima-azeem/authentication-app/shared/auth"
	"github.com/fatima-azeem/authentication-app/shared/discovery"
	"github.com/fatima-azeem/authentication-app/shared/mailer"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "authservice").Logger()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	sessionRepo := repository.NewSessionMongoRepository(ctx, &logger, db)
	otpRepo := repository.NewOtpMongoRepository(ctx, &logger, db)
	onboardingRepo := repository.NewOnboardingMongoRepository(ctx, &logger, db)
	tokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, &logger, db)
	transactor := repository.NewMongoTransactor(mongoClient)

	var limiter usecase.RequestLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis client")
			}
		}()

		limiter = rate.NewLimiter(redisClient, &logger, cfg.OtpRateWindow, cfg.OtpRateMax)
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	notifier := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(
		userRepo, sessionRepo, otpRepo, onboardingRepo, tokenRepo,
		transactor, jwtAuth, notifier, &logger, cfg,
	)
	otpUsecase := usecase.NewOtpUsecase(userRepo, otpRepo, transactor, notifier, limiter, &logger, cfg)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		userRepo, tokenRepo, transactor, notifier, limiter, &logger, cfg,
	)

	h := handler.NewHandler(authUsecase, otpUsecase, passwordResetUsecase, jwtAuth, &logger, cfg)
	srv := server.New(h, &logger, cfg)

	if cfg.ConsulAddr != "" {
		registration, err := discovery.Register(
			&logger, cfg.ConsulAddr, cfg.ServiceName, cfg.AdvertiseAddr, cfg.AdvertisePort,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to register with consul")
		}
		defer registration.Close()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal().Err(err).Msg("http server failed")
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server cleanly")
	}
}
