package crypto

import (
	"crypto/ed25519"
	"crypto/sha256"
)

// FingerprintSize is the number of SHA-256 bytes kept in a fingerprint.
const FingerprintSize = 16

// Fingerprint returns the base64 of the first 16 bytes of SHA-256(pub).
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return B64(sum[:FingerprintSize])
}

// FingerprintBase64 decodes a base64 public key and fingerprints it.
func FingerprintBase64(publicKey string) (string, error) {
	pub, err := decodeFixed("public key", publicKey, ed25519.PublicKeySize)
	if err != nil {
		return "", err
	}
	return Fingerprint(pub), nil
}
