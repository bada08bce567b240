package signing

import (
	"fmt"

	"snartnet/internal/crypto"
	"snartnet/internal/domain"
	domaintypes "snartnet/internal/domain/types"
)

type cloner[T any] interface{ Clone() T }

type sealable interface{ Sealed() bool }

// Create signs the canonical bytes of value with kp. The returned entity
// holds its own copy of value, sealed where the type supports it. A sealable
// value must already be sealed; post drafts are signed with SignPost.
func Create[T domaintypes.Signable](value T, kp domain.KeyPair) (domaintypes.SignedEntity[T], error) {
	if s, ok := any(value).(sealable); ok && !s.Sealed() {
		return domaintypes.SignedEntity[T]{}, fmt.Errorf("%w: unsealed %s", domain.ErrInvalidInput, value.EnvelopeKey())
	}
	if c, ok := any(value).(cloner[T]); ok {
		value = c.Clone()
	}
	msg, err := value.CanonicalBytes()
	if err != nil {
		return domaintypes.SignedEntity[T]{}, err
	}
	sig, err := crypto.Sign(kp.SecretKey, msg)
	if err != nil {
		return domaintypes.SignedEntity[T]{}, fmt.Errorf("sign %s: %w", value.EnvelopeKey(), err)
	}
	domaintypes.SealValue(&value)
	return domaintypes.SignedEntity[T]{Value: value, Signature: sig}, nil
}

// Verify recomputes the canonical bytes of signed.Value and checks them
// against signed.Signature under publicKey.
func Verify[T domaintypes.Signable](signed domaintypes.SignedEntity[T], publicKey string) bool {
	msg, err := signed.Value.CanonicalBytes()
	if err != nil {
		return false
	}
	return crypto.Verify(msg, signed.Signature, publicKey)
}

// SignPost seals draft so no further attachments can be added, then signs it.
func SignPost(draft *domain.Post, kp domain.KeyPair) (domain.SignedPost, error) {
	sealed := draft.Clone()
	sealed.Seal()
	signed, err := Create(sealed, kp)
	if err != nil {
		return domain.SignedPost{}, err
	}
	draft.Seal()
	return signed, nil
}

// VerifyProfile checks a profile against the key it carries: the fingerprint
// must belong to the embedded public key and the signature must verify
// under it.
func VerifyProfile(signed domain.SignedProfile) bool {
	fp, err := crypto.FingerprintBase64(signed.Value.PublicKey)
	if err != nil || fp != signed.Value.Fingerprint {
		return false
	}
	return Verify(signed, signed.Value.PublicKey)
}

// VerifyPost checks signed under publicKey and that publicKey is the post's
// claimed author.
func VerifyPost(signed domain.SignedPost, publicKey string) bool {
	fp, err := crypto.FingerprintBase64(publicKey)
	if err != nil || fp != signed.Value.AuthorFingerprint {
		return false
	}
	return Verify(signed, publicKey)
}

// VerifyMessage checks signed under publicKey and that publicKey is the
// message's claimed sender.
func VerifyMessage(signed domain.SignedMessage, publicKey string) bool {
	fp, err := crypto.FingerprintBase64(publicKey)
	if err != nil || fp != signed.Value.SenderFingerprint {
		return false
	}
	return Verify(signed, publicKey)
}
