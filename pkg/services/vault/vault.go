// Package vault seals vendor API credentials on disk. The file format is
// nonce || ciphertext under XChaCha20-Poly1305; the key comes from the
// environment, never from the repository.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// Credentials is the vendor API key pair kept in the vault.
type Credentials struct {
	APIKey string `json:"api_key"`
	AppKey string `json:"app_key"`
}

// DeriveKey stretches a passphrase into a cipher key.
func DeriveKey(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:]
}

// Seal writes the credentials to path, encrypted under key.
func Seal(path string, key []byte, creds Credentials) error {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return fmt.Errorf("write vault file: %w", err)
	}
	return nil
}

// Open reads and decrypts the credentials at path.
func Open(path string, key []byte) (Credentials, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return Credentials{}, fmt.Errorf("init cipher: %w", err)
	}

	sealed, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read vault file: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return Credentials{}, fmt.Errorf("vault file %s is truncated", path)
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Credentials{}, fmt.Errorf("decrypt vault file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	return creds, nil
}
