package types

import (
	"encoding/json"
	"fmt"

	"snartnet/internal/canonical"
)

// SignedEntity pairs a value with a base64 Ed25519 signature over the
// value's canonical bytes. It never re-signs itself: after any change to
// Value the signature is stale until a new SignedEntity is created.
type SignedEntity[T Signable] struct {
	Value     T
	Signature string
}

type (
	SignedProfile = SignedEntity[Profile]
	SignedPost    = SignedEntity[Post]
	SignedMessage = SignedEntity[Message]
)

// sealer is implemented by entities that must stop accepting changes once
// signed.
type sealer interface{ Seal() }

// SealValue seals v if its type supports sealing.
func SealValue[T Signable](v *T) {
	if s, ok := any(v).(sealer); ok {
		s.Seal()
	}
}

// MarshalJSON writes {"<entity>": <canonical value>, "signature": "..."}.
func (e SignedEntity[T]) MarshalJSON() ([]byte, error) {
	value, err := e.Value.CanonicalBytes()
	if err != nil {
		return nil, err
	}
	b, err := canonical.NewObject().
		Raw(e.Value.EnvelopeKey(), value).
		String("signature", e.Signature).
		Bytes()
	if err != nil {
		return nil, canonicalError("signed "+e.Value.EnvelopeKey(), err)
	}
	return b, nil
}

// UnmarshalJSON reads the signed envelope. The decoded value is sealed.
func (e *SignedEntity[T]) UnmarshalJSON(data []byte) error {
	var zero T
	key := zero.EnvelopeKey()
	entity := "signed " + key

	var raw map[string]json.RawMessage
	if err := decodeWire(entity, data, &raw); err != nil {
		return err
	}
	body, hasBody := raw[key]
	sigRaw, hasSig := raw["signature"]
	if err := checkRequired(entity,
		fieldCheck{key, hasBody},
		fieldCheck{"signature", hasSig},
	); err != nil {
		return err
	}
	var sig string
	if err := json.Unmarshal(sigRaw, &sig); err != nil {
		return fmt.Errorf("%w: %s: signature: %v", ErrSerialization, entity, err)
	}
	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerialization, entity, err)
	}
	SealValue(&value)
	e.Value = value
	e.Signature = sig
	return nil
}
