package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the sealed blob format.
	envelopeFormatVersion = 1

	saltBytes = 16
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// sealed blob has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted data")

// sealedBlob is the JSON structure holding the ciphertext and KDF parameters.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// Seal derives a key from passphrase and encrypts plaintext into a
// self-describing JSON blob.
func Seal(passphrase string, plaintext []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.New("seal: empty passphrase")
	}
	var salt [saltBytes]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	N, r, p := scryptParamsDefault()
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the per-blob salt makes every key unique
	ct := aead.Seal(nil, nonce[:], plaintext, salt[:])

	return json.Marshal(sealedBlob{
		V:      envelopeFormatVersion,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
}

// Open reverses Seal.
func Open(passphrase string, blob []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(blob, &bl); err != nil {
		return nil, fmt.Errorf("open sealed blob: %w", err)
	}
	if bl.V < 1 || bl.V > envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported sealed blob version %d", bl.V)
	}
	if len(bl.Salt) != saltBytes || len(bl.Cipher) == 0 {
		return nil, ErrWrongPassphrase
	}
	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// IsSealed reports whether data looks like a Seal output.
func IsSealed(data []byte) bool {
	var probe struct {
		V      int    `json:"v"`
		Cipher []byte `json:"cipher"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.V > 0 && len(probe.Cipher) > 0
}
