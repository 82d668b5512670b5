package cookie

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
)

func testKey(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestNewCodec_KeyLength(t *testing.T) {
	if _, err := NewCodec(testKey(1)[:16]); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error for short key, got %v", err)
	}
	if _, err := NewCodec(testKey(1)); err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
}

func TestSealOpen_Roundtrip(t *testing.T) {
	c, err := NewCodec(testKey(1))
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	sealed, err := c.Seal("the-token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	got, err := c.Open(sealed)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if got != "the-token" {
		t.Fatalf("roundtrip mismatch: %q", got)
	}
}

func TestSeal_NoncesDiffer(t *testing.T) {
	c, _ := NewCodec(testKey(1))
	a, _ := c.Seal("same")
	b, _ := c.Seal("same")
	if a == b {
		t.Fatalf("two seals of the same token must differ")
	}
}

func TestOpen_Malformed(t *testing.T) {
	c, _ := NewCodec(testKey(1))

	for _, sealed := range []string{"", "!!!not-base64!!!", base64.RawURLEncoding.EncodeToString([]byte("short"))} {
		if _, err := c.Open(sealed); !errors.Is(err, auth.ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", sealed, err)
		}
	}
}

func TestOpen_EveryBitFlipFails(t *testing.T) {
	c, _ := NewCodec(testKey(1))
	sealed, err := c.Seal("the-token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	// Flipping any single bit must never open successfully. Flips inside
	// the fingerprint prefix report a key mismatch, everything else is
	// tamper detection.
	for i := range raw {
		mutated := bytes.Clone(raw)
		mutated[i] ^= 0x01
		_, err := c.Open(base64.RawURLEncoding.EncodeToString(mutated))
		if err == nil {
			t.Fatalf("bit flip at byte %d opened successfully", i)
		}
		if i < fpLen {
			if !errors.Is(err, auth.ErrKeyMismatch) {
				t.Fatalf("byte %d: expected ErrKeyMismatch, got %v", i, err)
			}
		} else if !errors.Is(err, auth.ErrTamperDetected) {
			t.Fatalf("byte %d: expected ErrTamperDetected, got %v", i, err)
		}
	}
}

func TestOpen_ForeignKey(t *testing.T) {
	a, _ := NewCodec(testKey(1))
	b, _ := NewCodec(testKey(2))

	sealed, err := a.Seal("the-token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if _, err := b.Open(sealed); !errors.Is(err, auth.ErrKeyMismatch) {
		t.Fatalf("expected ErrKeyMismatch, got %v", err)
	}
}
