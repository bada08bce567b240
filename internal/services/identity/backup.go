package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"snartnet/internal/crypto"
	"snartnet/internal/domain"
	"snartnet/internal/store"
)

// BackupVersion is the backup document format version.
const BackupVersion = "1.0.0"

// Backup is a portable copy of the local identity. It contains the secret
// key and must be stored like one.
type Backup struct {
	Version       string                `json:"version"`
	Timestamp     time.Time             `json:"timestamp"`
	KeyPair       domain.KeyPair        `json:"keyPair"`
	SignedProfile *domain.SignedProfile `json:"signedProfile"`
	Metadata      BackupMetadata        `json:"metadata"`
}

// BackupMetadata identifies a backup without opening the key material.
type BackupMetadata struct {
	Username    string `json:"username"`
	Fingerprint string `json:"fingerprint"`
	BackupID    string `json:"backupId"`
}

// ExportBackup snapshots the held key pair and, if requested and present,
// the signed profile.
func (s *Session) ExportBackup(includeProfile bool) (Backup, error) {
	kp, ok := keyOf(s.state)
	if !ok {
		return Backup{}, fmt.Errorf("%w: nothing to back up", domain.ErrNoIdentity)
	}
	b := Backup{
		Version:   BackupVersion,
		Timestamp: time.Now().UTC(),
		KeyPair:   kp,
		Metadata: BackupMetadata{
			Fingerprint: kp.Fingerprint,
			BackupID:    uuid.NewString(),
		},
	}
	if sp, ok := s.CurrentProfile(); ok {
		b.Metadata.Username = sp.Value.Username
		if includeProfile {
			b.SignedProfile = &sp
		}
	}
	s.log.Info("backup exported", zap.String("backup_id", b.Metadata.BackupID), zap.Bool("profile", b.SignedProfile != nil))
	return b, nil
}

// Validate checks that b is internally consistent: a supported version, a
// key pair matching its own secret, and a profile signed by that key.
func (b Backup) Validate() error {
	if b.Version != BackupVersion {
		return fmt.Errorf("%w: unsupported backup version %q", domain.ErrInvalidInput, b.Version)
	}
	if err := crypto.ValidateKeyPair(b.KeyPair); err != nil {
		return fmt.Errorf("backup key pair: %w", err)
	}
	if b.Metadata.Fingerprint != "" && b.Metadata.Fingerprint != b.KeyPair.Fingerprint {
		return fmt.Errorf("%w: backup metadata names another fingerprint", domain.ErrKeyMismatch)
	}
	if b.SignedProfile != nil {
		if err := checkProfileOwner(*b.SignedProfile, b.KeyPair, true); err != nil {
			return fmt.Errorf("backup profile: %w", err)
		}
	}
	return nil
}

// ImportBackup replaces the local identity with the one in b. Storage is
// rolled back on a partial write, and the session state only changes once
// every write has succeeded.
func (s *Session) ImportBackup(b Backup) error {
	if err := b.Validate(); err != nil {
		return err
	}

	prevKey, hadKey, err := s.store.Get(KeyPairKey)
	if err != nil {
		return fmt.Errorf("%w: get %q: %w", domain.ErrStorage, KeyPairKey, err)
	}
	if err := store.SetJSON(s.store, KeyPairKey, b.KeyPair); err != nil {
		return err
	}
	if b.SignedProfile != nil {
		err = store.SetJSON(s.store, ProfileKey, *b.SignedProfile)
	} else {
		err = store.Remove(s.store, ProfileKey)
	}
	if err != nil {
		s.rollbackKeyPair(prevKey, hadKey)
		return err
	}

	if b.SignedProfile != nil {
		s.state = HasProfile{KeyPair: b.KeyPair, Profile: cloneSigned(*b.SignedProfile)}
	} else {
		s.state = HasKeyOnly{KeyPair: b.KeyPair}
	}
	s.log.Info("backup imported",
		zap.String("backup_id", b.Metadata.BackupID),
		zap.String("fingerprint", b.KeyPair.Fingerprint))
	return nil
}

func (s *Session) rollbackKeyPair(prev []byte, existed bool) {
	var err error
	if existed {
		err = s.store.Set(KeyPairKey, prev)
	} else {
		err = s.store.Remove(KeyPairKey)
	}
	if err != nil {
		s.log.Error("key pair rollback failed", zap.Error(err))
	}
}

// EncodeBackup renders b as indented JSON, sealed with passphrase when one
// is given.
func EncodeBackup(b Backup, passphrase string) ([]byte, error) {
	compact, err := store.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("%w: encode backup: %w", domain.ErrSerialization, err)
	}
	defer crypto.Wipe(compact)
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: encode backup: %w", domain.ErrSerialization, err)
	}
	raw := buf.Bytes()
	if passphrase == "" {
		return raw, nil
	}
	defer crypto.Wipe(raw)
	return crypto.Seal(passphrase, raw)
}

// DecodeBackup parses the output of EncodeBackup. Sealed input needs the
// passphrase it was sealed with.
func DecodeBackup(data []byte, passphrase string) (Backup, error) {
	if crypto.IsSealed(data) {
		if passphrase == "" {
			return Backup{}, fmt.Errorf("%w: backup is passphrase protected", domain.ErrInvalidInput)
		}
		pt, err := crypto.Open(passphrase, data)
		if err != nil {
			return Backup{}, err
		}
		defer crypto.Wipe(pt)
		data = pt
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: decode backup: %w", domain.ErrSerialization, err)
	}
	return b, nil
}

// ExportMnemonic returns the held secret key as 24 BIP-39 words.
func (s *Session) ExportMnemonic() (string, error) {
	kp, ok := keyOf(s.state)
	if !ok {
		return "", fmt.Errorf("%w: no key pair", domain.ErrNoIdentity)
	}
	return crypto.SeedMnemonic(kp.SecretKey)
}

// RestoreFromMnemonic installs the key pair encoded by words. Restoring the
// key already held changes nothing; restoring a different key drops the
// stored profile and leaves the session in HasKeyOnly.
func (s *Session) RestoreFromMnemonic(words string) (domain.KeyPair, error) {
	kp, err := crypto.KeyPairFromMnemonic(words)
	if err != nil {
		return domain.KeyPair{}, err
	}
	if cur, ok := keyOf(s.state); ok && cur.PublicKey == kp.PublicKey {
		return cur, nil
	}
	if err := store.SetJSON(s.store, KeyPairKey, kp); err != nil {
		return domain.KeyPair{}, err
	}
	s.state = HasKeyOnly{KeyPair: kp}
	s.log.Info("key pair restored from mnemonic", zap.String("fingerprint", kp.Fingerprint))
	if err := store.Remove(s.store, ProfileKey); err != nil {
		return kp, err
	}
	return kp, nil
}
