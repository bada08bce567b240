// Package crypto exposes the primitives behind a snartnet identity.
//
// Contents
//
//   - Ed25519 key generation, signing and verification over base64 key
//     material (GenerateKeyPair, KeyPairFromSeed, Sign, Verify)
//   - Fingerprints: the first 16 bytes of SHA-256(publicKey), base64
//     (Fingerprint, FingerprintBase64)
//   - BIP-39 mnemonics for the 32-byte signing seed (SeedMnemonic,
//     KeyPairFromMnemonic)
//   - Passphrase envelopes for data at rest (Seal, Open)
//   - Best-effort memory wiping for decoded secrets (Wipe)
//
// # Notes
//
// Sign reports malformed key material as domain.ErrDecode. Verify never
// errors: a key or signature that fails to parse is simply not verified.
package crypto
