package identity_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"snartnet/internal/crypto"
	"snartnet/internal/domain"
	"snartnet/internal/metrics"
	"snartnet/internal/services/identity"
	"snartnet/internal/store"
)

func TestInit_RestoresProfile(t *testing.T) {
	kv := store.NewMemoryStore()
	first := newSessionWithProfile(t, kv, "nora")
	want, _ := first.CurrentProfile()

	m := metrics.New()
	s := identity.New(kv, identity.WithMetrics(m))
	report, err := s.Init()
	require.NoError(t, err)
	assert.Equal(t, "profile", report.State)
	assert.Empty(t, report.Warnings)
	assert.True(t, s.HasProfile())

	got, _ := s.CurrentProfile()
	assert.Equal(t, want.Signature, got.Signature)
	assert.Equal(t, want.Value.ID, got.Value.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues(metrics.RestoreProfile)))
}

func TestInit_KeyOnly(t *testing.T) {
	kv := store.NewMemoryStore()
	first := identity.New(kv)
	kp, err := first.EnsureKeyPair()
	require.NoError(t, err)

	s := identity.New(kv)
	report, err := s.Init()
	require.NoError(t, err)
	assert.Equal(t, "key_only", report.State)
	fp, err := s.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, kp.Fingerprint, fp)
}

func TestInit_CorruptValuesAreWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(identity.KeyPairKey, []byte("{garbage")))
	require.NoError(t, kv.Set(identity.ProfileKey, []byte(`{"profile":{}}`)))

	m := metrics.New()
	s := identity.New(kv, identity.WithLogger(zap.New(core)), identity.WithMetrics(m))
	report, err := s.Init()
	require.NoError(t, err)

	assert.True(t, report.Corrupt())
	assert.Equal(t, "no_identity", report.State)
	require.Len(t, report.Warnings, 2)
	for _, w := range report.Warnings {
		assert.ErrorIs(t, w, domain.ErrCorruptState)
	}
	assert.Equal(t, identity.KeyPairKey, report.Warnings[0].Key)
	assert.ErrorIs(t, report.Warnings[0], domain.ErrSerialization)
	assert.Equal(t, 2, logs.FilterMessage("ignoring stored value").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues(metrics.RestoreCorrupt)))
}

func TestInit_KeyPairNotMatchingSecret(t *testing.T) {
	kv := store.NewMemoryStore()
	a, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	b, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	a.PublicKey = b.PublicKey
	require.NoError(t, store.SetJSON(kv, identity.KeyPairKey, a))

	s := identity.New(kv)
	report, err := s.Init()
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.ErrorIs(t, report.Warnings[0], domain.ErrKeyMismatch)
	assert.IsType(t, identity.NoIdentity{}, s.State())
}

func TestInit_ProfileOfAnotherKey(t *testing.T) {
	kv := store.NewMemoryStore()
	newSessionWithProfile(t, kv, "olga")

	other, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	require.NoError(t, store.SetJSON(kv, identity.KeyPairKey, other))

	s := identity.New(kv)
	report, err := s.Init()
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, identity.ProfileKey, report.Warnings[0].Key)
	assert.ErrorIs(t, report.Warnings[0], domain.ErrKeyMismatch)
	assert.Equal(t, "key_only", report.State)
}

func TestInit_TamperedProfileSignature(t *testing.T) {
	kv := store.NewMemoryStore()
	first := newSessionWithProfile(t, kv, "pete")
	sp, _ := first.CurrentProfile()
	sp.Value.Username = "peter"
	require.NoError(t, store.SetJSON(kv, identity.ProfileKey, sp))

	s := identity.New(kv)
	report, err := s.Init()
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.False(t, s.HasProfile())
}

func TestInit_StorageFailureIsError(t *testing.T) {
	kv := newFlakyStore()
	kv.failGet[identity.KeyPairKey] = true

	s := identity.New(kv)
	_, err := s.Init()
	require.ErrorIs(t, err, domain.ErrStorage)
	require.ErrorIs(t, err, errDisk)
	assert.IsType(t, identity.NoIdentity{}, s.State())
}

func TestInit_SealedFileStore(t *testing.T) {
	dir := t.TempDir()
	first := newSessionWithProfile(t, store.NewFileStore(dir, store.WithPassphrase("secret")), "quinn")
	fp, _ := first.Fingerprint()

	s := identity.New(store.NewFileStore(dir, store.WithPassphrase("secret")))
	_, err := s.Init()
	require.NoError(t, err)
	got, err := s.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, got)

	wrong := identity.New(store.NewFileStore(dir, store.WithPassphrase("nope")))
	_, err = wrong.Init()
	require.ErrorIs(t, err, domain.ErrStorage)
	require.ErrorIs(t, err, crypto.ErrWrongPassphrase)
}
