package helpers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"os"
)

var ErrCipherText = errors.New("malformed ciphertext")

func credentialKey() []byte {
	// ENCRYPTION_KEY can be any string; it is stretched to a 32-byte AES key.
	sum := sha256.Sum256([]byte(os.Getenv("ENCRYPTION_KEY")))
	return sum[:]
}

// EncryptCredential seals an automation credential with AES-GCM. Output is
// base64(nonce || ciphertext).
func EncryptCredential(plain string) (string, error) {
	block, err := aes.NewCipher(credentialKey())
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func DecryptCredential(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrCipherText
	}

	block, err := aes.NewCipher(credentialKey())
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(raw) < gcm.NonceSize() {
		return "", ErrCipherText
	}

	plain, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return "", ErrCipherText
	}
	return string(plain), nil
}
