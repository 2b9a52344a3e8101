package jwtvalidator

import (
	"context"
	"log/slog"

	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/jwks"
	"github.com/openjwt/jwtvalidator/core/metrics"
	"github.com/openjwt/jwtvalidator/core/parser"
	"github.com/openjwt/jwtvalidator/core/pipeline"
)

type validatorConfig struct {
	parserConfig parser.Config
	counter      *events.Counter
	monitor      *metrics.Monitor
	logger       *slog.Logger
}

// ValidatorOption configures a TokenValidator at construction via
// NewValidator.
type ValidatorOption func(*validatorConfig)

// WithParserConfig overrides parser.DefaultConfig for every issuer this
// validator serves.
func WithParserConfig(cfg parser.Config) ValidatorOption {
	return func(c *validatorConfig) { c.parserConfig = cfg }
}

// WithEventCounter wires a shared events.Counter; every pipeline stage
// increments it on failure, and VALIDATION_SUCCESS on success.
func WithEventCounter(counter *events.Counter) ValidatorOption {
	return func(c *validatorConfig) { c.counter = counter }
}

// WithMetricsMonitor enables per-stage timing via metrics.Monitor.
// Omitted, stage timing is zero-cost.
func WithMetricsMonitor(monitor *metrics.Monitor) ValidatorOption {
	return func(c *validatorConfig) { c.monitor = monitor }
}

// WithLogger wires a *slog.Logger that receives a warning for every
// rejected token and a debug line for every accepted one. Omitted, the
// pipeline logs nothing.
func WithLogger(l *slog.Logger) ValidatorOption {
	return func(c *validatorConfig) { c.logger = l }
}

// TokenValidator is the public entry point: it routes a raw token to the
// ValidationPipeline for its issuer and returns typed content. Safe for
// concurrent use after construction.
type TokenValidator struct {
	pipeline *pipeline.Pipeline
	cancel   context.CancelFunc
}

// NewValidator builds a TokenValidator over the given issuers. Any
// HTTP-backed jwks loader reachable from an issuer (directly via
// WithHTTPJWKS, or derived via WithWellKnown) has its background refresh
// scheduler started immediately; call Close to stop them.
func NewValidator(ctx context.Context, issuers []*IssuerConfig, opts ...ValidatorOption) *TokenValidator {
	cfg := validatorConfig{parserConfig: parser.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}

	runCtx, cancel := context.WithCancel(ctx)
	for _, iss := range issuers {
		if hl, ok := iss.JWKSLoader.(*jwks.HTTPLoader); ok {
			hl.Start(runCtx)
		}
	}

	var pipelineOpts []pipeline.Option
	if cfg.logger != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithLogger(cfg.logger))
	}

	return &TokenValidator{
		pipeline: pipeline.New(issuers, cfg.parserConfig, cfg.counter, cfg.monitor, pipelineOpts...),
		cancel:   cancel,
	}
}

// Close stops every background jwks refresh scheduler this validator
// started. The validator keeps serving traffic afterward against
// whatever snapshot each loader last held.
func (v *TokenValidator) Close() { v.cancel() }

// CreateAccessToken validates raw as an access token: typ (if present)
// must be "at+jwt", and sub/exp/iss plus aud-or-azp and scope-or-scp are
// mandatory.
func (v *TokenValidator) CreateAccessToken(ctx context.Context, raw string) (*AccessTokenContent, error) {
	content, failure := v.pipeline.Validate(ctx, pipeline.AccessToken, raw)
	if failure != nil {
		return nil, wrapFailure(failure)
	}
	return &AccessTokenContent{Content: content}, nil
}

// CreateIDToken validates raw as an ID token: typ (if present) must be
// "JWT" or "id+jwt", and sub/exp/iss/aud are mandatory.
func (v *TokenValidator) CreateIDToken(ctx context.Context, raw string) (*IDTokenContent, error) {
	content, failure := v.pipeline.Validate(ctx, pipeline.IDToken, raw)
	if failure != nil {
		return nil, wrapFailure(failure)
	}
	return &IDTokenContent{Content: content}, nil
}

// CreateRefreshToken validates raw as a refresh token. Opaque (non-JWT)
// values pass through unchanged; JWT-structured ones only get
// structural, signature, and temporal checks.
func (v *TokenValidator) CreateRefreshToken(ctx context.Context, raw string) (*RefreshTokenContent, error) {
	content, failure := v.pipeline.Validate(ctx, pipeline.RefreshToken, raw)
	if failure != nil {
		return nil, wrapFailure(failure)
	}
	return &RefreshTokenContent{Content: content}, nil
}
