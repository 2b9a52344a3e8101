package wellknown_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/retry"
	"github.com/openjwt/jwtvalidator/core/wellknown"
)

func fastRetry() retry.Options {
	return retry.Options{Enabled: true, MaxAttempts: 1, InitialDelay: time.Millisecond}
}

func TestResolver_SucceedsWithMatchingIssuer(t *testing.T) {
	t.Parallel()

	var jwksURL string
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	jwksURL = srv.URL + "/jwks"

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"issuer":%q,"jwks_uri":%q}`, srv.URL, jwksURL)
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"keys":[]}`))
	})

	r := wellknown.NewResolver(wellknown.WithRetryOptions(fastRetry()))
	res, err := r.Resolve(context.Background(), srv.URL+"/.well-known/openid-configuration")
	require.NoError(t, err)
	defer res.Loader.Stop()

	assert.Equal(t, srv.URL, res.Issuer)
	assert.Equal(t, jwksURL, res.JWKSURI)
}

func TestResolver_FailsOnIssuerMismatch(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"issuer":"https://wrong-origin.example","jwks_uri":"https://wrong-origin.example/jwks"}`)
	})

	counter := &events.Counter{}
	r := wellknown.NewResolver(wellknown.WithRetryOptions(fastRetry()), wellknown.WithCounter(counter))
	_, err := r.Resolve(context.Background(), srv.URL+"/.well-known/openid-configuration")

	assert.Error(t, err)
	assert.Equal(t, int64(1), counter.Count(events.WellKnownIssuerMismatch))
}

func TestResolver_FailsOnMissingField(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"issuer":%q}`, srv.URL)
	})

	counter := &events.Counter{}
	r := wellknown.NewResolver(wellknown.WithRetryOptions(fastRetry()), wellknown.WithCounter(counter))
	_, err := r.Resolve(context.Background(), srv.URL+"/.well-known/openid-configuration")

	assert.Error(t, err)
	assert.Equal(t, int64(1), counter.Count(events.WellKnownMissingField))
}

func TestResolver_CachesResolvedDocument(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"issuer":%q,"jwks_uri":%q}`, srv.URL, srv.URL+"/jwks")
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"keys":[]}`))
	})

	r := wellknown.NewResolver(wellknown.WithRetryOptions(fastRetry()))

	first, err := r.Resolve(context.Background(), srv.URL+"/.well-known/openid-configuration")
	require.NoError(t, err)
	defer first.Loader.Stop()

	second, err := r.Resolve(context.Background(), srv.URL+"/.well-known/openid-configuration")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestResolver_DedupesConcurrentFirstLoad(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		fmt.Fprintf(w, `{"issuer":%q,"jwks_uri":%q}`, srv.URL, srv.URL+"/jwks")
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"keys":[]}`))
	})

	r := wellknown.NewResolver(wellknown.WithRetryOptions(fastRetry()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Resolve(context.Background(), srv.URL+"/.well-known/openid-configuration")
			if err == nil {
				defer res.Loader.Stop()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
