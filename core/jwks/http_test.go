package jwks_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/jwks"
	"github.com/openjwt/jwtvalidator/core/retry"
)

func TestHTTPLoader_SynchronousFirstLoad(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"keys":[%s]}`, rsaJWKRaw(t, "kid-1"))
	}))
	defer srv.Close()

	loader := jwks.NewHTTPLoader(srv.URL, jwks.WithHTTPRetryOptions(retry.Options{Enabled: true, MaxAttempts: 1, InitialDelay: time.Millisecond}))
	defer loader.Stop()

	keys, ok := loader.GetKey("kid-1")
	require.True(t, ok)
	require.Len(t, keys, 1)
}

func TestHTTPLoader_DegradedWithNoPriorSnapshotOnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	counter := &events.Counter{}
	loader := jwks.NewHTTPLoader(srv.URL,
		jwks.WithHTTPRetryOptions(retry.Options{Enabled: true, MaxAttempts: 1, InitialDelay: time.Millisecond}),
		jwks.WithEventCounter(counter),
	)
	defer loader.Stop()

	_, ok := loader.GetKey("anything")
	assert.False(t, ok)
	assert.Equal(t, int64(1), counter.Count(events.JWKSFetchFailed))
}

func TestHTTPLoader_LogsBackgroundRefreshFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	loader := jwks.NewHTTPLoader(srv.URL,
		jwks.WithHTTPRetryOptions(retry.Options{Enabled: true, MaxAttempts: 1, InitialDelay: time.Millisecond}),
		jwks.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	defer loader.Stop()

	assert.Contains(t, buf.String(), "background refresh failed")
}

func rsaJWKRaw(t *testing.T, kid string) string {
	return string(rsaJWK(t, kid))
}
