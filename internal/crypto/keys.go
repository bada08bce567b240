package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"snartnet/internal/domain"
)

// SeedSize is the length of the Ed25519 secret seed.
const SeedSize = ed25519.SeedSize

// GenerateKeyPair draws a fresh Ed25519 key pair from crypto/rand.
func GenerateKeyPair() (domain.KeyPair, error) {
	seed := make([]byte, SeedSize)
	defer Wipe(seed)
	if _, err := rand.Read(seed); err != nil {
		return domain.KeyPair{}, fmt.Errorf("generate key pair: %w", err)
	}
	return KeyPairFromSeed(seed)
}

// KeyPairFromSeed rebuilds the key pair for a 32-byte seed.
func KeyPairFromSeed(seed []byte) (domain.KeyPair, error) {
	if len(seed) != SeedSize {
		return domain.KeyPair{}, fmt.Errorf("%w: seed: want %d bytes, got %d", domain.ErrDecode, SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	defer Wipe(priv)
	pub := priv.Public().(ed25519.PublicKey)
	return domain.KeyPair{
		PublicKey:   B64(pub),
		SecretKey:   B64(seed),
		Fingerprint: Fingerprint(pub),
	}, nil
}

// Sign signs msg with the base64 secret seed and returns a base64 signature.
func Sign(secretKey string, msg []byte) (string, error) {
	seed, err := decodeFixed("secret key", secretKey, SeedSize)
	if err != nil {
		return "", err
	}
	defer Wipe(seed)
	priv := ed25519.NewKeyFromSeed(seed)
	defer Wipe(priv)
	return B64(ed25519.Sign(priv, msg)), nil
}

// Verify reports whether sig is a valid signature of msg under pub. Keys or
// signatures that do not parse are treated the same as a bad signature.
func Verify(msg []byte, signature, publicKey string) bool {
	pub, err := strict.DecodeString(publicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := strict.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

// ValidateKeyPair checks that the public key and fingerprint in kp are the
// ones its secret seed produces.
func ValidateKeyPair(kp domain.KeyPair) error {
	seed, err := decodeFixed("secret key", kp.SecretKey, SeedSize)
	if err != nil {
		return err
	}
	defer Wipe(seed)
	want, err := KeyPairFromSeed(seed)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(want.PublicKey), []byte(kp.PublicKey)) != 1 {
		return fmt.Errorf("%w: public key does not match secret key", domain.ErrKeyMismatch)
	}
	if want.Fingerprint != kp.Fingerprint {
		return fmt.Errorf("%w: fingerprint does not match public key", domain.ErrKeyMismatch)
	}
	return nil
}
