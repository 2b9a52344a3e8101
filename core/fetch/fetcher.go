package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openjwt/jwtvalidator/core/retry"
)

// Default timeouts per the connect/read split used throughout this library.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 30 * time.Second

	// maxBodyBytes bounds how much of a response this fetcher will buffer,
	// independent of any caller-imposed ParserConfig limit.
	maxBodyBytes = 1 << 20 // 1 MiB
)

// Converter turns a successfully-fetched response body into T, or reports
// it as unusable content.
type Converter[T any] func([]byte) (T, error)

type cacheEntry[T any] struct {
	content T
	etag    string
	status  int
}

// Fetcher performs conditional GET against a fixed URL, caching the last
// good body and ETag behind an atomically-swapped pointer, and wraps each
// network attempt in core/retry's backoff policy.
type Fetcher[T any] struct {
	url       string
	convert   Converter[T]
	client    *http.Client
	retryOpts retry.Options

	mu    sync.Mutex
	cache atomic.Pointer[cacheEntry[T]]
}

// Option configures a Fetcher at construction time.
type Option[T any] func(*Fetcher[T])

// WithHTTPClient overrides the default connect/read-timeout-bound client.
func WithHTTPClient[T any](client *http.Client) Option[T] {
	return func(f *Fetcher[T]) {
		if client != nil {
			f.client = client
		}
	}
}

// WithRetryOptions overrides the default retry policy.
func WithRetryOptions[T any](opts retry.Options) Option[T] {
	return func(f *Fetcher[T]) {
		f.retryOpts = opts
	}
}

func defaultClient() *http.Client {
	return &http.Client{
		Timeout: DefaultReadTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: DefaultConnectTimeout,
			}).DialContext,
		},
	}
}

// New creates a Fetcher for url, converting response bodies with convert.
func New[T any](url string, convert Converter[T], opts ...Option[T]) *Fetcher[T] {
	f := &Fetcher[T]{
		url:       url,
		convert:   convert,
		client:    defaultClient(),
		retryOpts: retry.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load performs a conditional GET, retried per the configured policy, and
// returns an HttpResult-shaped outcome. See spec.md §4.5 for the state
// machine this implements. A failure surfaces as STALE (not ERROR) if a
// prior snapshot exists, but only once every retry attempt is exhausted —
// each individual attempt reports ERROR so core/retry can decide whether
// to retry it.
func (f *Fetcher[T]) Load(ctx context.Context) retry.Result[T] {
	res := retry.Execute(ctx, f.retryOpts, f.attempt)
	if res.State == retry.Error {
		if cached := f.cache.Load(); cached != nil {
			res.State = retry.Stale
			res.Ok = true
			res.Content = cached.content
			res.ETag = cached.etag
		}
	}
	return res
}

func (f *Fetcher[T]) attempt(ctx context.Context) retry.Result[T] {
	cached := f.cache.Load()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return retry.Result[T]{State: retry.Error, Detail: &retry.Detail{Category: retry.CategoryInvalidContent, Message: err.Error()}}
	}
	if cached != nil && cached.etag != "" {
		req.Header.Set("If-None-Match", cached.etag)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return retry.Result[T]{State: retry.Error, Detail: &retry.Detail{Category: retry.CategoryNetwork, Message: err.Error()}}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		if cached == nil {
			// A 304 with nothing cached is a server error we cannot use.
			return retry.Result[T]{State: retry.Error, HTTPStatus: resp.StatusCode, Detail: &retry.Detail{Category: retry.CategoryInvalidContent, Message: "304 response with no cached content"}}
		}
		return retry.Result[T]{
			State:      retry.Cached,
			Ok:         true,
			Content:    cached.content,
			ETag:       cached.etag,
			HTTPStatus: resp.StatusCode,
		}

	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
		if err != nil {
			return retry.Result[T]{State: retry.Error, HTTPStatus: resp.StatusCode, Detail: &retry.Detail{Category: retry.CategoryNetwork, Message: err.Error()}}
		}
		if len(body) > maxBodyBytes {
			return retry.Result[T]{State: retry.Error, HTTPStatus: resp.StatusCode, Detail: &retry.Detail{Category: retry.CategoryInvalidContent, Message: "response body exceeds size limit"}}
		}

		content, err := f.convert(body)
		if err != nil {
			return retry.Result[T]{State: retry.Error, HTTPStatus: resp.StatusCode, Detail: &retry.Detail{Category: retry.CategoryInvalidContent, Message: err.Error()}}
		}

		entry := &cacheEntry[T]{content: content, etag: resp.Header.Get("ETag"), status: resp.StatusCode}
		f.mu.Lock()
		f.cache.Store(entry)
		f.mu.Unlock()

		return retry.Result[T]{
			State:      retry.Fresh,
			Ok:         true,
			Content:    content,
			ETag:       entry.etag,
			HTTPStatus: resp.StatusCode,
		}

	case resp.StatusCode >= 500:
		return retry.Result[T]{State: retry.Error, HTTPStatus: resp.StatusCode, Detail: &retry.Detail{Category: retry.Category5xx, Message: fmt.Sprintf("server returned %d", resp.StatusCode)}}

	default:
		category := retry.Category4xx
		if resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests {
			category = retry.CategoryNetwork
		}
		return retry.Result[T]{State: retry.Error, HTTPStatus: resp.StatusCode, Detail: &retry.Detail{Category: category, Message: fmt.Sprintf("server returned %d", resp.StatusCode)}}
	}
}
