package types

// KeyPair is the local signing identity. All fields are standard base64.
// SecretKey is the 32-byte Ed25519 seed and never leaves the local device
// except through an explicit backup.
type KeyPair struct {
	PublicKey   string `json:"publicKey"`
	SecretKey   string `json:"secretKey"`
	Fingerprint string `json:"fingerprint"`
}

// KeyInfo is the public half of a KeyPair.
type KeyInfo struct {
	PublicKey   string `json:"publicKey"`
	Fingerprint string `json:"fingerprint"`
}

// Info returns the public half of k.
func (k KeyPair) Info() KeyInfo {
	return KeyInfo{PublicKey: k.PublicKey, Fingerprint: k.Fingerprint}
}

// IsZero reports whether k holds no key material.
func (k KeyPair) IsZero() bool {
	return k.PublicKey == "" && k.SecretKey == "" && k.Fingerprint == ""
}

// String keeps the secret out of logs and error messages.
func (k KeyPair) String() string {
	return "KeyPair{" + k.Fingerprint + "}"
}
