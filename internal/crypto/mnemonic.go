package crypto

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"snartnet/internal/domain"
)

// SeedMnemonic encodes the 32-byte secret seed as 24 BIP-39 words.
func SeedMnemonic(secretKey string) (string, error) {
	seed, err := decodeFixed("secret key", secretKey, SeedSize)
	if err != nil {
		return "", err
	}
	defer Wipe(seed)
	return bip39.NewMnemonic(seed)
}

// KeyPairFromMnemonic rebuilds the key pair a SeedMnemonic came from.
func KeyPairFromMnemonic(mnemonic string) (domain.KeyPair, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	seed, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: mnemonic: %v", domain.ErrDecode, err)
	}
	defer Wipe(seed)
	return KeyPairFromSeed(seed)
}
