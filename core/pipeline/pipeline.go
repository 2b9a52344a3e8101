package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/jwks"
	"github.com/openjwt/jwtvalidator/core/logger"
	"github.com/openjwt/jwtvalidator/core/metrics"
	"github.com/openjwt/jwtvalidator/core/parser"
	"github.com/openjwt/jwtvalidator/core/signature"
)

// leeway bounds how far nbf/iat may sit in the future and still be
// accepted; exp never gets leeway (spec.md §4.10).
const leeway = 60 * time.Second

// typRequirement is the set of acceptable "typ" header values for a
// token type; nil means "typ is irrelevant" (opaque-eligible refresh
// tokens), and an absent typ header is always acceptable when non-nil.
func typRequirement(t TokenType) []string {
	switch t {
	case AccessToken:
		return []string{"at+jwt"}
	case IDToken:
		return []string{"JWT", "id+jwt"}
	default:
		return nil
	}
}

// Pipeline validates raw JWT-compact tokens against a set of known
// issuers, fanning out by the token's "iss" claim at stage 7.
type Pipeline struct {
	issuers map[string]*Issuer
	parser  parser.Config
	counter *events.Counter
	monitor *metrics.Monitor
	logger  *slog.Logger
}

// Option configures a Pipeline at construction via New.
type Option func(*Pipeline)

// WithLogger wires a *slog.Logger that receives a warning for every
// rejected token, naming the stage and event type that rejected it.
// Omitted, the pipeline logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New builds a Pipeline over the given issuers, keyed by Identifier.
func New(issuers []*Issuer, parserConfig parser.Config, counter *events.Counter, monitor *metrics.Monitor, opts ...Option) *Pipeline {
	p := &Pipeline{
		issuers: make(map[string]*Issuer, len(issuers)),
		parser:  parserConfig,
		counter: counter,
		monitor: monitor,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, iss := range issuers {
		p.issuers[iss.Identifier] = iss
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) event(t events.Type) {
	if p.counter != nil {
		p.counter.Increment(t)
	}
}

// reject records and logs a stage failure, returning it unchanged so call
// sites can write `return nil, p.reject(f)`.
func (p *Pipeline) reject(f *Failure) *Failure {
	p.event(f.EventType)
	p.logger.Warn("token rejected",
		logger.EventType(f.EventType.String()),
		slog.String("detail", f.Message))
	return f
}

func (p *Pipeline) timeStage(stage metrics.Stage, fn func()) {
	if p.monitor == nil || !p.monitor.Enabled(stage) {
		fn()
		return
	}
	start := time.Now()
	fn()
	p.monitor.Record(stage, time.Since(start))
}

// Validate runs the full fourteen-stage pipeline for tt against raw,
// returning the mapped Content on success or a *Failure identifying
// exactly which stage rejected it.
func (p *Pipeline) Validate(ctx context.Context, tt TokenType, raw string) (*Content, *Failure) {
	if ctx.Err() != nil {
		return nil, p.reject(fail(events.Interrupted, ctx.Err().Error()))
	}

	// Refresh tokens are often opaque; a non-JWT-structured value is valid
	// as-is and never enters the pipeline proper.
	if tt == RefreshToken && !looksLikeJWT(raw) {
		return &Content{Opaque: true, Raw: raw}, nil
	}

	var decoded DecodedJWT
	var decodeFail *Failure
	p.timeStage("decode", func() { decoded, decodeFail = decode(raw, p.parser) })
	if decodeFail != nil {
		return nil, p.reject(decodeFail)
	}

	if f := checkTyp(decoded.Header, tt); f != nil {
		return nil, p.reject(f)
	}

	alg, f := extractHeaderString(decoded.Header, "alg")
	if f != nil {
		return nil, p.reject(f)
	}
	if alg == "" {
		return nil, p.reject(fail(events.AlgorithmNotAllowed, "header has no alg"))
	}
	if rejectedAlg(alg) {
		if alg == "none" {
			return nil, p.reject(fail(events.AlgorithmNoneRejected, "alg \"none\" is rejected"))
		}
		return nil, p.reject(fail(events.AlgorithmNotAllowed, "alg "+alg+" is not permitted"))
	}

	issuerName, f := extractPayloadString(decoded.Payload, "iss")
	if f != nil {
		return nil, p.reject(f)
	}
	issuer, ok := p.issuers[issuerName]
	if !ok {
		return nil, p.reject(fail(events.IssuerUnknown, "unknown issuer: "+issuerName))
	}

	kid, _ := extractHeaderString(decoded.Header, "kid") // absent kid is allowed (try-all fallback)

	candidates, ok := issuer.JWKSLoader.GetKey(kid)
	if !ok {
		return nil, p.reject(fail(events.KeyNotFound, "no signing key available for kid "+kid))
	}

	var verifyFail *Failure
	p.timeStage("signature_verify", func() { verifyFail = verifySignature(issuer.SignatureEngine, alg, decoded, candidates) })
	if verifyFail != nil {
		return nil, p.reject(verifyFail)
	}

	if f := checkTemporal(decoded.Payload); f != nil {
		return nil, p.reject(f)
	}

	// Refresh tokens that happen to be JWT-structured only get structural
	// + signature + temporal checks per spec.md §4.11.
	if tt != RefreshToken {
		if f := checkAudience(issuer, decoded.Payload); f != nil {
			return nil, p.reject(f)
		}
		if f := checkClientID(issuer, decoded.Payload); f != nil {
			return nil, p.reject(f)
		}
		if f := checkMandatoryClaims(decoded.Payload, tt); f != nil {
			return nil, p.reject(f)
		}
	}

	p.event(events.ValidationSuccess)
	p.logger.Debug("token validated", logger.Issuer(issuerName))
	return newContent(issuerName, decoded.Payload, issuer.ClaimMappers), nil
}

func rejectedAlg(alg string) bool {
	switch alg {
	case "none", "HS256", "HS384", "HS512":
		return true
	default:
		return false
	}
}

// verifySignature tries every candidate key (there is more than one only
// when the token's kid is absent or matches no key) and succeeds if any
// one of them validates, per spec.md §3's bounded try-all fallback. An alg
// outside the issuer's preferences is reported as AlgorithmNotAllowed.
func verifySignature(engine *signature.Engine, alg string, decoded DecodedJWT, candidates []jwks.KeyInfo) *Failure {
	for _, k := range candidates {
		err := engine.Verify(alg, decoded.SigningInput, decoded.SignatureBytes, k.PublicKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, signature.ErrAlgorithmNotAllowed) {
			return fail(events.AlgorithmNotAllowed, "alg "+alg+" is not permitted for this issuer")
		}
	}
	return fail(events.SignatureValidationFailed, "no candidate key verified the signature")
}
