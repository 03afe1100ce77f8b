// Package cryptox holds the primitives used to keep session secrets
// encrypted at rest: argon2id key derivation and AES-GCM sealing.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/examhub/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the AES-256 key length produced by DeriveKey.
	KeySize = 32
	// SaltSize is the recommended salt length for DeriveKey.
	SaltSize = 16
)

var ErrEmptySecret = errors.New("empty secret")

// DeriveKey stretches secret into a 32-byte AES key using argon2id.
func DeriveKey(secret []byte, salt []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize), nil
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated for each call and returned next to the ciphertext.
//
// The key must be a valid AES key length (16, 24 or 32 bytes).
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open reverses Seal. It fails if the key is wrong or the ciphertext
// was tampered with.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
