package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjwt/jwtvalidator/core/health"
	"github.com/openjwt/jwtvalidator/core/jwks"
)

func TestCheckAll_AllPass(t *testing.T) {
	t.Parallel()

	status := health.CheckAll(context.Background(), map[string]health.Check{
		"ok": func(ctx context.Context) error { return nil },
	})
	assert.True(t, status.Ready)
	assert.Empty(t, status.Failures)
}

func TestCheckAll_ReportsFailures(t *testing.T) {
	t.Parallel()

	status := health.CheckAll(context.Background(), map[string]health.Check{
		"bad": func(ctx context.Context) error { return errors.New("boom") },
	})
	assert.False(t, status.Ready)
	assert.Equal(t, "boom", status.Failures["bad"])
}

func TestCheckAll_EmptyIsReady(t *testing.T) {
	t.Parallel()
	assert.True(t, health.CheckAll(context.Background(), nil).Ready)
}

func TestJWKSReady_ReportsDegradedWhenNoKeys(t *testing.T) {
	t.Parallel()

	loader := jwks.NewInMemoryLoaderFromKeys(nil)
	check := health.JWKSReady("test-issuer", loader)
	require.Error(t, check(context.Background()))
}

func TestJWKSReady_ReadyWithKeys(t *testing.T) {
	t.Parallel()

	loader := jwks.NewInMemoryLoaderFromKeys([]jwks.KeyInfo{{KeyID: "k1", Algorithm: "RS256"}})
	check := health.JWKSReady("test-issuer", loader)
	assert.NoError(t, check(context.Background()))
}
