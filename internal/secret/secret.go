// Package secret seals message payloads with a passphrase before they are
// embedded in a chunk. The envelope is self-describing:
//
//	magic "PVS1" | salt (16) | nonce (12) | ChaCha20-Poly1305 ciphertext
//
// The key is derived with PBKDF2-SHA256. Sealing is optional; the chunk
// model never looks inside its data, so plain and sealed payloads travel
// the same way.
package secret

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	magic      = "PVS1"
	saltSize   = 16
	kdfRounds  = 200000
	headerSize = len(magic) + saltSize + chacha20poly1305.NonceSize
)

// Errors returned by Open.
var (
	ErrNotSealed = errors.New("payload is not a sealed envelope")
	ErrDecrypt   = errors.New("cannot decrypt payload: wrong passphrase or corrupted data")
)

// Seal encrypts msg under passphrase with a fresh random salt and nonce.
func Seal(msg []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(msg)+aead.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, msg, nil), nil
}

// Open decrypts an envelope produced by Seal. It returns ErrNotSealed if
// blob does not carry the envelope magic, and ErrDecrypt if authentication
// fails.
func Open(blob []byte, passphrase string) ([]byte, error) {
	if len(blob) < headerSize || string(blob[:len(magic)]) != magic {
		return nil, ErrNotSealed
	}
	salt := blob[len(magic) : len(magic)+saltSize]
	nonce := blob[len(magic)+saltSize : headerSize]
	ciphertext := blob[headerSize:]

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}
	msg, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return msg, nil
}

// IsSealed reports whether blob carries the envelope magic.
func IsSealed(blob []byte) bool {
	return len(blob) >= len(magic) && string(blob[:len(magic)]) == magic
}

func newAEAD(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, kdfRounds, chacha20poly1305.KeySize, sha256.New)
	return chacha20poly1305.New(key)
}
