// Package cookie seals session tokens into an authenticated-encryption
// envelope suitable for transport in an HTTP cookie, and opens them again.
// The envelope is self-contained: no server-side lookup is needed to open it,
// only the process master key.
package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
)

const (
	keyLen       = 32 // AES-256
	fpLen        = 4  // key fingerprint prefix
	nonceLen     = 12
	minSealedLen = fpLen + nonceLen + 16 // 16 = GCM tag
)

// Codec performs AES-GCM sealing under a process-wide master key. The wire
// form is base64url(fingerprint || nonce || ciphertext+tag), where the
// fingerprint is the first 4 bytes of SHA-256(master key) and lets a rotated
// key be reported as a key mismatch rather than tampering.
type Codec struct {
	aead        cipher.AEAD
	fingerprint []byte
}

// NewCodec builds a codec from 32 bytes of master key material.
func NewCodec(masterKey []byte) (*Codec, error) {
	if len(masterKey) != keyLen {
		return nil, common.ErrorValidation
	}
	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	fp := sha256.Sum256(masterKey)
	return &Codec{aead: aead, fingerprint: fp[:fpLen]}, nil
}

// Seal encrypts the token string into the cookie wire form.
func (c *Codec) Seal(token string) (string, error) {
	nonce := common.GenerateRandByteArray(nonceLen)

	out := make([]byte, 0, fpLen+nonceLen+len(token)+c.aead.Overhead())
	out = append(out, c.fingerprint...)
	out = append(out, nonce...)
	out = c.aead.Seal(out, nonce, []byte(token), c.fingerprint)

	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open decrypts and verifies a sealed cookie, returning the embedded token.
// Structural problems yield ErrMalformed, a foreign key fingerprint yields
// ErrKeyMismatch, and an authentication-tag failure yields ErrTamperDetected.
// The fingerprint comparison is constant-time.
func (c *Codec) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", auth.ErrMalformed
	}
	if len(raw) < minSealedLen {
		return "", auth.ErrMalformed
	}

	fp := raw[:fpLen]
	nonce := raw[fpLen : fpLen+nonceLen]
	ciphertext := raw[fpLen+nonceLen:]

	if subtle.ConstantTimeCompare(fp, c.fingerprint) != 1 {
		return "", auth.ErrKeyMismatch
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, c.fingerprint)
	if err != nil {
		return "", auth.ErrTamperDetected
	}
	return string(plaintext), nil
}
