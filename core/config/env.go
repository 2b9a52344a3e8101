package config

import (
	"time"

	"github.com/openjwt/jwtvalidator/core/parser"
	"github.com/openjwt/jwtvalidator/core/retry"
)

// RetryOptions is the env-sourced shape of core/retry's tuning knobs
// (spec.md §6's "Retry tuning" configuration surface), for collaborators
// that want these read from the environment rather than constructed in
// code via retry.Options.
type RetryOptions struct {
	Enabled           bool          `env:"JWT_RETRY_ENABLED" envDefault:"true"`
	MaxAttempts       int           `env:"JWT_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	InitialDelay      time.Duration `env:"JWT_RETRY_INITIAL_DELAY" envDefault:"1s"`
	MaxDelay          time.Duration `env:"JWT_RETRY_MAX_DELAY" envDefault:"30s"`
	BackoffMultiplier float64       `env:"JWT_RETRY_BACKOFF_MULTIPLIER" envDefault:"2.0"`
	JitterFactor      float64       `env:"JWT_RETRY_JITTER_FACTOR" envDefault:"0.1"`
}

// ParserLimits is the env-sourced shape of core/parser.Config's five
// limits (spec.md §6's "Parser limits" configuration surface).
type ParserLimits struct {
	MaxTokenSize   int `env:"JWT_MAX_TOKEN_SIZE" envDefault:"8192"`
	MaxPayloadSize int `env:"JWT_MAX_PAYLOAD_SIZE" envDefault:"2048"`
	MaxStringSize  int `env:"JWT_MAX_STRING_SIZE" envDefault:"1024"`
	MaxArraySize   int `env:"JWT_MAX_ARRAY_SIZE" envDefault:"64"`
	MaxDepth       int `env:"JWT_MAX_DEPTH" envDefault:"10"`
}

// JWKSRefresh is the env-sourced background-refresh interval for an
// HTTPLoader, kept separate from RetryOptions since it governs scheduling
// rather than per-request backoff.
type JWKSRefresh struct {
	Interval time.Duration `env:"JWT_JWKS_REFRESH_INTERVAL" envDefault:"60s"`
}

// ToRetryOptions converts the env-sourced struct to retry.Options.
func (r RetryOptions) ToRetryOptions() retry.Options {
	return retry.Options{
		Enabled:           r.Enabled,
		MaxAttempts:       r.MaxAttempts,
		InitialDelay:      r.InitialDelay,
		MaxDelay:          r.MaxDelay,
		BackoffMultiplier: r.BackoffMultiplier,
		JitterFactor:      r.JitterFactor,
	}
}

// ToParserConfig converts the env-sourced struct to parser.Config.
func (l ParserLimits) ToParserConfig() parser.Config {
	return parser.Config{
		MaxTokenSize:   l.MaxTokenSize,
		MaxPayloadSize: l.MaxPayloadSize,
		MaxStringSize:  l.MaxStringSize,
		MaxArraySize:   l.MaxArraySize,
		MaxDepth:       l.MaxDepth,
	}
}
