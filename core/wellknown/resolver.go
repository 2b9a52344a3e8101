package wellknown

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/openjwt/jwtvalidator/core/cache"
	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/fetch"
	"github.com/openjwt/jwtvalidator/core/jwks"
	"github.com/openjwt/jwtvalidator/core/logger"
	"github.com/openjwt/jwtvalidator/core/retry"
)

// defaultDocCacheSize bounds how many distinct well-known URLs a Resolver
// keeps a validated Result for. One entry per issuer is the expected
// shape, so this comfortably covers a host serving many tenants.
const defaultDocCacheSize = 64

// document is the subset of an OIDC discovery document this resolver
// requires.
type document struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

// Result is a successfully validated discovery outcome.
type Result struct {
	Issuer  string
	JWKSURI string
	Loader  *jwks.HTTPLoader
}

// Resolver fetches and validates openid-configuration documents, deduping
// concurrent first-load requests for the same URL via singleflight so a
// startup stampede across goroutines issues one fetch, not N, and caching
// validated Results by URL so repeat Resolve calls (e.g. several issuers
// sharing a discovery endpoint) never re-fetch the document.
type Resolver struct {
	group     singleflight.Group
	counter   *events.Counter
	retryOpts retry.Options
	docs      *cache.LRUCache[string, *Result]
	logger    *slog.Logger
}

// Option configures a Resolver at construction.
type Option func(*Resolver)

// WithCounter wires an events.Counter for WellKnownMissingField and
// WellKnownIssuerMismatch.
func WithCounter(counter *events.Counter) Option {
	return func(r *Resolver) { r.counter = counter }
}

// WithRetryOptions overrides the fetcher's retry policy.
func WithRetryOptions(opts retry.Options) Option {
	return func(r *Resolver) { r.retryOpts = opts }
}

// WithDocumentCacheSize overrides defaultDocCacheSize.
func WithDocumentCacheSize(n int) Option {
	return func(r *Resolver) { r.docs = cache.NewLRUCache[string, *Result](n) }
}

// WithLogger wires a *slog.Logger that receives a warning for a missing
// field or issuer-origin mismatch, and is passed through to the HTTPLoader
// built for the discovered jwks_uri. Omitted, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver constructs a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		retryOpts: retry.DefaultOptions(),
		docs:      cache.NewLRUCache[string, *Result](defaultDocCacheSize),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches wellKnownURL, validates it, and derives an HTTPLoader
// for the discovered jwks_uri. Concurrent calls for the same URL share a
// single in-flight fetch; a previously validated Result is served
// straight from the document cache without touching the network again.
func (r *Resolver) Resolve(ctx context.Context, wellKnownURL string) (*Result, error) {
	if cached, ok := r.docs.Get(wellKnownURL); ok {
		return cached, nil
	}

	v, err, _ := r.group.Do(wellKnownURL, func() (interface{}, error) {
		return r.resolveOnce(ctx, wellKnownURL)
	})
	if err != nil {
		return nil, err
	}
	result := v.(*Result)
	r.docs.Put(wellKnownURL, result)
	return result, nil
}

func (r *Resolver) resolveOnce(ctx context.Context, wellKnownURL string) (*Result, error) {
	f := fetch.New(wellKnownURL, parseDocument, fetch.WithRetryOptions[document](r.retryOpts))
	res := f.Load(ctx)
	if !res.Ok {
		msg := "fetch failed"
		if res.Detail != nil {
			msg = res.Detail.Message
		}
		return nil, fmt.Errorf("wellknown: fetch %s: %s", wellKnownURL, msg)
	}

	doc := res.Content
	if doc.Issuer == "" || doc.JWKSURI == "" {
		r.event(events.WellKnownMissingField)
		r.logger.Warn("wellknown: document missing issuer or jwks_uri", logger.URL(wellKnownURL))
		return nil, fmt.Errorf("wellknown: %s missing required issuer/jwks_uri field", wellKnownURL)
	}

	if err := validateIssuerOrigin(doc.Issuer, wellKnownURL); err != nil {
		r.event(events.WellKnownIssuerMismatch)
		r.logger.Warn("wellknown: issuer does not match document origin", logger.URL(wellKnownURL), logger.Issuer(doc.Issuer))
		return nil, err
	}

	return &Result{
		Issuer:  doc.Issuer,
		JWKSURI: doc.JWKSURI,
		Loader: jwks.NewHTTPLoader(doc.JWKSURI,
			jwks.WithEventCounter(r.counter),
			jwks.WithHTTPRetryOptions(r.retryOpts),
			jwks.WithLogger(r.logger)),
	}, nil
}

func (r *Resolver) event(t events.Type) {
	if r.counter != nil {
		r.counter.Increment(t)
	}
}

func parseDocument(body []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return document{}, fmt.Errorf("wellknown: decode document: %w", err)
	}
	return doc, nil
}

// validateIssuerOrigin checks the discovered issuer equals the well-known
// URL's origin, case-sensitively, after trimming a trailing slash.
func validateIssuerOrigin(issuer, wellKnownURL string) error {
	u, err := url.Parse(wellKnownURL)
	if err != nil {
		return fmt.Errorf("wellknown: parse %s: %w", wellKnownURL, err)
	}
	origin := u.Scheme + "://" + u.Host
	trimmedIssuer := strings.TrimSuffix(issuer, "/")
	if trimmedIssuer != origin {
		return fmt.Errorf("wellknown: issuer %q does not match origin %q", issuer, origin)
	}
	return nil
}
