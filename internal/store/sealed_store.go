package store

import (
	"snartnet/internal/crypto"
	"snartnet/internal/domain"
)

// SealedStore seals every value with a passphrase before handing it to the
// wrapped store.
type SealedStore struct {
	inner      domain.KeyValueStore
	passphrase string
}

// NewSealedStore wraps inner.
func NewSealedStore(inner domain.KeyValueStore, passphrase string) *SealedStore {
	return &SealedStore{inner: inner, passphrase: passphrase}
}

// Get opens the value stored under key.
func (s *SealedStore) Get(key string) ([]byte, bool, error) {
	b, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	pt, err := crypto.Open(s.passphrase, b)
	if err != nil {
		return nil, false, err
	}
	return pt, true, nil
}

// Set seals value and stores it under key.
func (s *SealedStore) Set(key string, value []byte) error {
	blob, err := crypto.Seal(s.passphrase, value)
	if err != nil {
		return err
	}
	return s.inner.Set(key, blob)
}

// Remove deletes key from the wrapped store.
func (s *SealedStore) Remove(key string) error { return s.inner.Remove(key) }

// Compile-time assertion that SealedStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SealedStore)(nil)
