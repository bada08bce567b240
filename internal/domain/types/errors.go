package types

import "errors"

var (
	// ErrDecode is returned when a base64 key or signature is malformed or
	// decodes to the wrong length.
	ErrDecode = errors.New("decode error")

	// ErrNoIdentity is returned when an operation needs an established key
	// pair or profile and none exists yet.
	ErrNoIdentity = errors.New("no identity")

	// ErrSerialization is returned when canonical encoding or JSON decoding
	// of an entity fails.
	ErrSerialization = errors.New("serialization error")

	// ErrStorage wraps failures of the storage collaborator.
	ErrStorage = errors.New("storage error")

	// ErrPostSealed is returned when an attachment is appended to a post that
	// has already been signed.
	ErrPostSealed = errors.New("post is sealed by a signature")

	// ErrInvalidInput is returned for caller-supplied values that cannot form
	// a valid entity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptState is returned when persisted data exists but cannot be
	// trusted.
	ErrCorruptState = errors.New("corrupt stored state")

	// ErrKeyMismatch is returned when a profile or backup does not belong to
	// the key pair it is paired with.
	ErrKeyMismatch = errors.New("key mismatch")
)
