// internal/config/crypto.go
package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const (
	masterKeyName = "api_token_key"
	masterKeySize = 32
)

// MasterKey returns the AES key kept in store, creating it on first use
func MasterKey(store SecretStore) ([]byte, error) {
	keyHex, err := store.Secret(masterKeyName)
	switch {
	case err == nil:
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != masterKeySize {
			return nil, fmt.Errorf("master key %q is malformed", masterKeyName)
		}
		return key, nil
	case !errors.Is(err, ErrSecretNotFound):
		return nil, err
	}

	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := store.SetSecret(masterKeyName, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("store master key: %w", err)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plainText with AES-GCM and returns nonce||ciphertext as hex
func Encrypt(plainText string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return hex.EncodeToString(gcm.Seal(nonce, nonce, []byte(plainText), nil)), nil
}

// Decrypt reverses Encrypt
func Decrypt(sealedHex string, key []byte) (string, error) {
	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return "", err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	n := gcm.NonceSize()
	if len(sealed) < n {
		return "", errors.New("ciphertext too short")
	}
	plain, err := gcm.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
