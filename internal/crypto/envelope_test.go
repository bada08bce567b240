package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snartnet/internal/crypto"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	plain := []byte(`{"secret":"value"}`)
	blob, err := crypto.Seal("correct horse", plain)
	require.NoError(t, err)
	assert.True(t, crypto.IsSealed(blob))
	assert.NotContains(t, string(blob), "value")

	got, err := crypto.Open("correct horse", blob)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestOpen_WrongPassphrase(t *testing.T) {
	blob, err := crypto.Seal("correct", []byte("data"))
	require.NoError(t, err)

	_, err = crypto.Open("wrong", blob)
	require.ErrorIs(t, err, crypto.ErrWrongPassphrase)
}

func TestSeal_EmptyPassphraseRejected(t *testing.T) {
	_, err := crypto.Seal("", []byte("data"))
	require.Error(t, err)
}

func TestIsSealed_PlainJSON(t *testing.T) {
	assert.False(t, crypto.IsSealed([]byte(`{"publicKey":"x"}`)))
	assert.False(t, crypto.IsSealed([]byte(`not json`)))
}
