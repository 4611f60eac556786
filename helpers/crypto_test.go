package helpers

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRoundtrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "test-key")

	sealed, err := EncryptCredential("s3cret-pin")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "s3cret")

	plain, err := DecryptCredential(sealed)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pin", plain)
}

func TestDecryptRejectsTampered(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "test-key")

	sealed, err := EncryptCredential("password")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	_, err = DecryptCredential(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrCipherText)

	_, err = DecryptCredential("not base64!!")
	assert.ErrorIs(t, err, ErrCipherText)

	_, err = DecryptCredential(base64.StdEncoding.EncodeToString([]byte("ab")))
	assert.ErrorIs(t, err, ErrCipherText)
}

func TestDecryptWrongKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "key-one")
	sealed, err := EncryptCredential("password")
	require.NoError(t, err)

	t.Setenv("ENCRYPTION_KEY", "key-two")
	_, err = DecryptCredential(sealed)
	assert.ErrorIs(t, err, ErrCipherText)
}
