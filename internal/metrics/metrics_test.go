package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snartnet/internal/metrics"
)

func TestCounters(t *testing.T) {
	m := metrics.New()
	m.ObserveSignature("profile")
	m.ObserveSignature("profile")
	m.ObserveVerification("post", true)
	m.ObserveVerification("post", false)
	m.ObserveVerification("post", false)
	m.ObserveProfileMutation("create")
	m.ObserveRestore(metrics.RestoreCorrupt)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Signatures.WithLabelValues("profile")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues("post", metrics.ResultValid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Verifications.WithLabelValues("post", metrics.ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfileMutations.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues(metrics.RestoreCorrupt)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveSignature("profile")
	m.ObserveVerification("profile", true)
	m.ObserveProfileMutation("update")
	m.ObserveRestore(metrics.RestoreEmpty)
	assert.Nil(t, m.Registry())
	require.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveSignature("message")

	path := filepath.Join(t.TempDir(), "snartnet.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `snartnet_signatures_total{entity="message"} 1`)
}
