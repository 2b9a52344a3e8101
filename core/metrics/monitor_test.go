package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openjwt/jwtvalidator/core/metrics"
)

const (
	stageSignature metrics.Stage = "signature_verify"
	stageClaims     metrics.Stage = "claims_validate"
)

func TestMonitor_RecordsOnlyEnabledStages(t *testing.T) {
	t.Parallel()

	m := metrics.NewMonitor(stageSignature)

	assert.True(t, m.Enabled(stageSignature))
	assert.False(t, m.Enabled(stageClaims))

	m.Record(stageSignature, 5*time.Millisecond)
	m.Record(stageClaims, 5*time.Millisecond) // no-op, not enabled

	assert.Equal(t, 1, m.Statistics(stageSignature).SampleCount)
	assert.Equal(t, 0, m.Statistics(stageClaims).SampleCount)
}

func TestMonitor_NilIsZeroCost(t *testing.T) {
	t.Parallel()

	var m *metrics.Monitor
	assert.False(t, m.Enabled(stageSignature))
	m.Record(stageSignature, time.Second) // must not panic
	assert.Equal(t, 0, m.Statistics(stageSignature).SampleCount)
}
