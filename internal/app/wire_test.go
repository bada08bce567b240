package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snartnet/internal/app"
)

func TestWire_BackendsPersistIdentity(t *testing.T) {
	for _, backend := range []app.Backend{app.BackendFile, app.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			cfg := app.Config{
				Home:       filepath.Join(t.TempDir(), "home"),
				Passphrase: "pw",
				Backend:    backend,
			}
			w, err := app.NewWire(cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, "no_identity", w.Restore.State)
			_, err = w.Session.CreateProfile("alice", nil, nil)
			require.NoError(t, err)
			fp, _ := w.Session.Fingerprint()
			require.NoError(t, w.Close())

			w, err = app.NewWire(cfg, nil)
			require.NoError(t, err)
			defer w.Close()
			assert.Equal(t, "profile", w.Restore.State)
			got, err := w.Session.Fingerprint()
			require.NoError(t, err)
			assert.Equal(t, fp, got)
		})
	}
}

func TestWire_WrongPassphraseFails(t *testing.T) {
	home := t.TempDir()
	w, err := app.NewWire(app.Config{Home: home, Passphrase: "right", Backend: app.BackendFile}, nil)
	require.NoError(t, err)
	_, err = w.Session.EnsureKeyPair()
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = app.NewWire(app.Config{Home: home, Passphrase: "wrong", Backend: app.BackendFile}, nil)
	require.Error(t, err)
}

func TestWire_MetricsTextfile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snartnet.prom")
	w, err := app.NewWire(app.Config{Backend: app.BackendMemory, MetricsTextfile: out}, nil)
	require.NoError(t, err)
	_, err = w.Session.CreateProfile("bob", nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `snartnet_profile_mutations_total{op="create"} 1`)
	assert.Contains(t, string(b), `snartnet_restore_total{outcome="empty"} 1`)
}
