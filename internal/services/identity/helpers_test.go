package identity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"snartnet/internal/domain"
	"snartnet/internal/services/identity"
	"snartnet/internal/store"
)

var errDisk = errors.New("disk full")

// flakyStore fails writes to the keys listed in failSet and reads of the
// keys in failGet.
type flakyStore struct {
	*store.MemoryStore
	failSet map[string]bool
	failGet map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		MemoryStore: store.NewMemoryStore(),
		failSet:     map[string]bool{},
		failGet:     map[string]bool{},
	}
}

func (f *flakyStore) Get(key string) ([]byte, bool, error) {
	if f.failGet[key] {
		return nil, false, errDisk
	}
	return f.MemoryStore.Get(key)
}

func (f *flakyStore) Set(key string, value []byte) error {
	if f.failSet[key] {
		return errDisk
	}
	return f.MemoryStore.Set(key, value)
}

var _ domain.KeyValueStore = (*flakyStore)(nil)

func strp(s string) *string { return &s }

func newSessionWithProfile(t *testing.T, kv domain.KeyValueStore, username string) *identity.Session {
	t.Helper()
	s := identity.New(kv)
	_, err := s.Init()
	require.NoError(t, err)
	_, err = s.CreateProfile(username, nil, nil)
	require.NoError(t, err)
	return s
}
