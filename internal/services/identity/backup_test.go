package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snartnet/internal/crypto"
	"snartnet/internal/domain"
	"snartnet/internal/services/identity"
	"snartnet/internal/store"
)

func TestBackup_RoundTrip(t *testing.T) {
	src := newSessionWithProfile(t, store.NewMemoryStore(), "rose")
	b, err := src.ExportBackup(true)
	require.NoError(t, err)
	assert.Equal(t, identity.BackupVersion, b.Version)
	assert.Equal(t, "rose", b.Metadata.Username)
	assert.NotEmpty(t, b.Metadata.BackupID)
	require.NotNil(t, b.SignedProfile)

	for _, pass := range []string{"", "backup pass"} {
		data, err := identity.EncodeBackup(b, pass)
		require.NoError(t, err)
		assert.Equal(t, pass != "", crypto.IsSealed(data))

		decoded, err := identity.DecodeBackup(data, pass)
		require.NoError(t, err)

		kv := store.NewMemoryStore()
		dst := identity.New(kv)
		require.NoError(t, dst.ImportBackup(decoded))
		assert.True(t, dst.HasProfile())

		srcFP, _ := src.Fingerprint()
		dstFP, _ := dst.Fingerprint()
		assert.Equal(t, srcFP, dstFP)

		reloaded := identity.New(kv)
		report, err := reloaded.Init()
		require.NoError(t, err)
		assert.Equal(t, "profile", report.State)
	}
}

func TestBackup_KeyOnly(t *testing.T) {
	src := newSessionWithProfile(t, store.NewMemoryStore(), "sam")
	b, err := src.ExportBackup(false)
	require.NoError(t, err)
	assert.Nil(t, b.SignedProfile)
	assert.Equal(t, "sam", b.Metadata.Username)

	dst := newSessionWithProfile(t, store.NewMemoryStore(), "other")
	require.NoError(t, dst.ImportBackup(b))
	assert.IsType(t, identity.HasKeyOnly{}, dst.State())
}

func TestBackup_ExportNeedsKey(t *testing.T) {
	_, err := identity.New(store.NewMemoryStore()).ExportBackup(true)
	require.ErrorIs(t, err, domain.ErrNoIdentity)
}

func TestBackup_ValidateRejectsForeignProfile(t *testing.T) {
	a := newSessionWithProfile(t, store.NewMemoryStore(), "tess")
	b := newSessionWithProfile(t, store.NewMemoryStore(), "uma")

	backup, err := a.ExportBackup(true)
	require.NoError(t, err)
	foreign, _ := b.CurrentProfile()
	backup.SignedProfile = &foreign
	require.ErrorIs(t, backup.Validate(), domain.ErrKeyMismatch)

	dst := identity.New(store.NewMemoryStore())
	require.Error(t, dst.ImportBackup(backup))
	assert.IsType(t, identity.NoIdentity{}, dst.State())
}

func TestBackup_ValidateRejectsBadVersion(t *testing.T) {
	src := newSessionWithProfile(t, store.NewMemoryStore(), "vera")
	b, err := src.ExportBackup(false)
	require.NoError(t, err)
	b.Version = "9.9.9"
	require.ErrorIs(t, b.Validate(), domain.ErrInvalidInput)
}

func TestBackup_ImportRollsBackOnProfileWriteFailure(t *testing.T) {
	kv := newFlakyStore()
	dst := newSessionWithProfile(t, kv, "walt")
	before, _ := dst.CurrentProfile()
	prevKey, _, err := kv.Get(identity.KeyPairKey)
	require.NoError(t, err)

	src := newSessionWithProfile(t, store.NewMemoryStore(), "xena")
	b, err := src.ExportBackup(true)
	require.NoError(t, err)

	kv.failSet[identity.ProfileKey] = true
	require.ErrorIs(t, dst.ImportBackup(b), domain.ErrStorage)

	cur, _ := dst.CurrentProfile()
	assert.Equal(t, before, cur)
	gotKey, _, err := kv.Get(identity.KeyPairKey)
	require.NoError(t, err)
	assert.Equal(t, prevKey, gotKey)
}

func TestDecodeBackup_Errors(t *testing.T) {
	src := newSessionWithProfile(t, store.NewMemoryStore(), "yara")
	b, err := src.ExportBackup(true)
	require.NoError(t, err)
	sealed, err := identity.EncodeBackup(b, "pw")
	require.NoError(t, err)

	_, err = identity.DecodeBackup(sealed, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = identity.DecodeBackup(sealed, "wrong")
	require.ErrorIs(t, err, crypto.ErrWrongPassphrase)
	_, err = identity.DecodeBackup([]byte("[1,2"), "")
	require.ErrorIs(t, err, domain.ErrSerialization)
}

func TestMnemonic_ExportRestore(t *testing.T) {
	src := newSessionWithProfile(t, store.NewMemoryStore(), "zoe")
	words, err := src.ExportMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(words), 24)

	kv := store.NewMemoryStore()
	dst := newSessionWithProfile(t, kv, "other")
	kp, err := dst.RestoreFromMnemonic(words)
	require.NoError(t, err)

	srcFP, _ := src.Fingerprint()
	assert.Equal(t, srcFP, kp.Fingerprint)
	assert.IsType(t, identity.HasKeyOnly{}, dst.State())
	_, ok, err := kv.Get(identity.ProfileKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMnemonic_RestoreSameKeyKeepsProfile(t *testing.T) {
	s := newSessionWithProfile(t, store.NewMemoryStore(), "adam")
	words, err := s.ExportMnemonic()
	require.NoError(t, err)

	_, err = s.RestoreFromMnemonic(words)
	require.NoError(t, err)
	assert.True(t, s.HasProfile())
}

func TestMnemonic_Invalid(t *testing.T) {
	s := identity.New(store.NewMemoryStore())
	_, err := s.RestoreFromMnemonic("not a mnemonic")
	require.ErrorIs(t, err, domain.ErrDecode)
	_, err = s.ExportMnemonic()
	require.ErrorIs(t, err, domain.ErrNoIdentity)
}
