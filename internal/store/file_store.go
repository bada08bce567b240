package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"snartnet/internal/crypto"
	"snartnet/internal/domain"
)

const (
	plainExt  = ".json"
	sealedExt = ".json.enc"
)

// FileStore persists each key as its own file under dir. With a passphrase
// every value is sealed with crypto.Seal before it reaches disk.
type FileStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithPassphrase seals stored values with passphrase.
func WithPassphrase(passphrase string) FileStoreOption {
	return func(s *FileStore) { s.passphrase = passphrase }
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sealed reports whether values are passphrase-protected.
func (s *FileStore) Sealed() bool { return s.passphrase != "" }

// Get reads and, if sealed, decrypts the value for key.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(path)
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, nil
	}
	if !s.Sealed() {
		return b, true, nil
	}
	pt, err := crypto.Open(s.passphrase, b)
	if err != nil {
		return nil, false, err
	}
	return pt, true, nil
}

// Set writes value for key with 0600 permissions.
func (s *FileStore) Set(key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if s.Sealed() {
		if value, err = crypto.Seal(s.passphrase, value); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(path, value, 0o600)
}

// Remove deletes the file for key.
func (s *FileStore) Remove(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(path)
}

func (s *FileStore) path(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	ext := plainExt
	if s.Sealed() {
		ext = sealedExt
	}
	return filepath.Join(s.dir, key+ext), nil
}

// validKey keeps keys usable as bare file names.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty store key", domain.ErrInvalidInput)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return fmt.Errorf("%w: store key %q: character %q not allowed", domain.ErrInvalidInput, key, r)
		}
	}
	if key[0] == '.' {
		return fmt.Errorf("%w: store key %q must not start with '.'", domain.ErrInvalidInput, key)
	}
	return nil
}

// Compile-time assertion that FileStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileStore)(nil)
