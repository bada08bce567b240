package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"snartnet/internal/domain"
)

// GetJSON reads key from s and decodes it into a T. ok is false when the key
// is absent. Store failures wrap domain.ErrStorage; undecodable values wrap
// domain.ErrSerialization.
func GetJSON[T any](s domain.KeyValueStore, key string) (v T, ok bool, err error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return v, false, fmt.Errorf("%w: get %q: %w", domain.ErrStorage, key, err)
	}
	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, true, fmt.Errorf("%w: decode %q: %w", domain.ErrSerialization, key, err)
	}
	return v, true, nil
}

// Marshal encodes v without HTML escaping, so canonical entity bytes reach
// storage and the wire unchanged.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// SetJSON encodes v with Marshal and writes it under key.
func SetJSON(s domain.KeyValueStore, key string, v any) error {
	raw, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %w", domain.ErrSerialization, key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("%w: set %q: %w", domain.ErrStorage, key, err)
	}
	return nil
}

// Remove deletes key from s.
func Remove(s domain.KeyValueStore, key string) error {
	if err := s.Remove(key); err != nil {
		return fmt.Errorf("%w: remove %q: %w", domain.ErrStorage, key, err)
	}
	return nil
}
