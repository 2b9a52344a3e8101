package jwks

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/openjwt/jwtvalidator/core/async"
	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/fetch"
	"github.com/openjwt/jwtvalidator/core/logger"
	"github.com/openjwt/jwtvalidator/core/retry"
)

// DefaultRefreshInterval is how often an HTTPLoader re-polls its URL in
// the background once the scheduler is started.
const DefaultRefreshInterval = 60 * time.Second

// HTTPLoader polls a JWKS URL with ETag-aware conditional GET (via
// core/fetch), publishing snapshots through an atomically-swapped
// pointer. A background scheduler keeps it fresh; GetKey always reads the
// current snapshot without blocking on network I/O.
type HTTPLoader struct {
	url       string
	fetcher   *fetch.Fetcher[Snapshot]
	scheduler *async.Scheduler
	counter   *events.Counter
	logger    *slog.Logger

	current atomic.Pointer[loadedSnapshot]
}

var _ Loader = (*HTTPLoader)(nil)

// HTTPLoaderOption configures an HTTPLoader at construction.
type HTTPLoaderOption func(*httpLoaderConfig)

type httpLoaderConfig struct {
	refreshInterval time.Duration
	retryOptions    retry.Options
	counter         *events.Counter
	logger          *slog.Logger
}

// WithRefreshInterval overrides DefaultRefreshInterval.
func WithRefreshInterval(d time.Duration) HTTPLoaderOption {
	return func(c *httpLoaderConfig) {
		if d > 0 {
			c.refreshInterval = d
		}
	}
}

// WithHTTPRetryOptions overrides the fetcher's retry policy.
func WithHTTPRetryOptions(opts retry.Options) HTTPLoaderOption {
	return func(c *httpLoaderConfig) { c.retryOptions = opts }
}

// WithEventCounter wires an events.Counter so fetch and parse failures are
// recorded as JWKSFetchFailed / JWKSJSONParseFailed.
func WithEventCounter(counter *events.Counter) HTTPLoaderOption {
	return func(c *httpLoaderConfig) { c.counter = counter }
}

// WithLogger wires a *slog.Logger that receives a warning every time a
// background refresh fails to produce a usable snapshot. Omitted, the
// loader logs nothing.
func WithLogger(l *slog.Logger) HTTPLoaderOption {
	return func(c *httpLoaderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPLoader performs a synchronous first load against url (per
// spec.md §4.6): FRESH/CACHED installs the snapshot; STALE/ERROR with no
// prior snapshot leaves the loader in a degraded, empty-snapshot state
// rather than failing construction. Call Start to begin background
// refresh.
func NewHTTPLoader(url string, opts ...HTTPLoaderOption) *HTTPLoader {
	cfg := httpLoaderConfig{
		refreshInterval: DefaultRefreshInterval,
		retryOptions:    retry.DefaultOptions(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &HTTPLoader{url: url, counter: cfg.counter, logger: cfg.logger}
	l.fetcher = fetch.New(url, ParseSnapshot, fetch.WithRetryOptions[Snapshot](cfg.retryOptions))
	l.current.Store(&loadedSnapshot{Snapshot: emptySnapshot()})

	l.refreshOnce(context.Background())
	l.scheduler = async.NewScheduler(cfg.refreshInterval, l.refreshOnce)
	return l
}

// Start begins the background refresh scheduler. Safe to call once.
func (l *HTTPLoader) Start(ctx context.Context) { l.scheduler.Start(ctx) }

// Stop halts the background refresh scheduler.
func (l *HTTPLoader) Stop() { l.scheduler.Stop() }

func (l *HTTPLoader) refreshOnce(ctx context.Context) {
	res := l.fetcher.Load(ctx)
	switch res.State {
	case retry.Fresh:
		l.current.Store(&loadedSnapshot{Snapshot: res.Content, hint: algHintFrom(res.Content)})
	case retry.Cached, retry.Recovered:
		if res.Ok {
			l.current.Store(&loadedSnapshot{Snapshot: res.Content, hint: algHintFrom(res.Content)})
		}
	default:
		if l.counter != nil {
			l.counter.Increment(events.JWKSFetchFailed)
		}
		l.logger.Warn("jwks: background refresh failed, serving last known snapshot",
			logger.URL(l.url), logger.Component("jwks.http_loader"))
	}
}

func (l *HTTPLoader) GetKey(keyID string) ([]KeyInfo, bool) {
	cur := l.current.Load()
	c := candidatesFor(cur.Snapshot, keyID)
	return c, len(c) > 0
}

func (l *HTTPLoader) AlgorithmPreferencesHint() []string {
	return l.current.Load().hint
}
