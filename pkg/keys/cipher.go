package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	masterKeySize = 32 // AES-256
	secretKeySize = 64 // ed25519 secret key
)

// KeyCipher encrypts and decrypts campaign secret keys for storage.
// The interface is the seam for swapping in hardware-backed or KMS
// implementations without touching the stores or services.
type KeyCipher interface {
	Encrypt(secretKey []byte) (string, error)
	Decrypt(encrypted string) ([]byte, error)
}

// MasterKeyCipher is a KeyCipher backed by a single AES-256-GCM master key.
type MasterKeyCipher struct {
	masterKey []byte
}

// NewMasterKeyCipher creates a cipher from a 32-byte master key.
func NewMasterKeyCipher(masterKey []byte) *MasterKeyCipher {
	return &MasterKeyCipher{masterKey: masterKey}
}

// MasterKeyFromBase64 decodes and validates a base64 master key.
func MasterKeyFromBase64(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(key) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes (AES-256), got %d", masterKeySize, len(key))
	}
	return key, nil
}

// Encrypt encrypts a campaign secret key using AES-256-GCM.
// Returns the encrypted key as a base64-encoded string containing: nonce || ciphertext || tag
func (c *MasterKeyCipher) Encrypt(secretKey []byte) (string, error) {
	if len(c.masterKey) != masterKeySize {
		return "", fmt.Errorf("master key must be %d bytes (AES-256)", masterKeySize)
	}
	if len(secretKey) != secretKeySize {
		return "", fmt.Errorf("secret key must be %d bytes (ed25519)", secretKeySize)
	}

	block, err := aes.NewCipher(c.masterKey)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, secretKey, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts an encrypted campaign secret key.
// The encrypted string must be base64-encoded containing: nonce || ciphertext || tag
func (c *MasterKeyCipher) Decrypt(encrypted string) ([]byte, error) {
	if len(c.masterKey) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes (AES-256)", masterKeySize)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(c.masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	if len(plaintext) != secretKeySize {
		return nil, fmt.Errorf("decrypted key has wrong size: got %d, want %d", len(plaintext), secretKeySize)
	}

	return plaintext, nil
}
