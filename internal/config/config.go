package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the immutable configuration of the authentication service,
// parsed from the environment once at startup and injected into every
// component. There is no global settings singleton.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME"     envDefault:"authentication-app"`
	HTTPAddr        string        `env:"HTTP_ADDR"        envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"authentication"`

	// Redis is optional; when RedisAddr is empty OTP rate limiting is disabled.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Consul is optional; when ConsulAddr is empty the service does not
	// register itself.
	ConsulAddr         string `env:"CONSUL_ADDR"`
	AdvertiseAddr      string `env:"ADVERTISE_ADDR" envDefault:"127.0.0.1"`
	AdvertisePort      int    `env:"ADVERTISE_PORT" envDefault:"8080"`

	Token TokenConfig

	OtpExpiresIn        time.Duration `env:"OTP_EXPIRES_IN"         envDefault:"10m"`
	ResetTokenExpiresIn time.Duration `env:"RESET_TOKEN_EXPIRES_IN" envDefault:"1h"`

	OtpRateWindow time.Duration `env:"OTP_RATE_WINDOW" envDefault:"10m"`
	OtpRateMax    int           `env:"OTP_RATE_MAX"    envDefault:"5"`
}

// TokenConfig holds the JWT signing configuration. Access and refresh tokens
// are signed with separate secrets.
type TokenConfig struct {
	Issuer                string        `env:"JWT_ISSUER" envDefault:"authentication-app"`
	AccessTokenSecret     string        `env:"JWT_ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret    string        `env:"JWT_REFRESH_TOKEN_SECRET"`
	AccessTokenExpiresIn  time.Duration `env:"JWT_ACCESS_TOKEN_EXPIRES_IN"  envDefault:"30m"`
	RefreshTokenExpiresIn time.Duration `env:"JWT_REFRESH_TOKEN_EXPIRES_IN" envDefault:"168h"`
}

// New parses and validates the configuration from environment variables.
func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the required fields and the key-separation invariant.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing JWT_ACCESS_TOKEN_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == "" {
		return fmt.Errorf("missing JWT_REFRESH_TOKEN_SECRET environment variable")
	}
	if c.Token.AccessTokenSecret == c.Token.RefreshTokenSecret {
		return fmt.Errorf("JWT_ACCESS_TOKEN_SECRET and JWT_REFRESH_TOKEN_SECRET must differ")
	}

	return nil
}
