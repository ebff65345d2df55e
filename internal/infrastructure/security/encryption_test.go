package security

import (
	"strings"
	"testing"
)

const hexKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestSealOpenRoundTrip(t *testing.T) {
	sealed, err := Seal("tok-001", hexKey)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if strings.Contains(sealed, "tok-001") {
		t.Error("sealed value contains the plaintext")
	}

	plain, err := Open(sealed, hexKey)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if plain != "tok-001" {
		t.Errorf("Open() = %q, want %q", plain, "tok-001")
	}
}

func TestSeal_NondeterministicNonce(t *testing.T) {
	a, err := Seal("same", hexKey)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	b, err := Seal("same", hexKey)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if a == b {
		t.Error("two seals of the same plaintext are identical")
	}
}

func TestOpen_WrongKey(t *testing.T) {
	sealed, err := Seal("tok-001", hexKey)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	other := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	if _, err := Open(sealed, other); err == nil {
		t.Error("Open() with wrong key error = nil, want error")
	}
}

func TestOpen_Garbage(t *testing.T) {
	if _, err := Open("not base64 at all!!!", hexKey); err == nil {
		t.Error("Open() on garbage error = nil, want error")
	}
	if _, err := Open("", hexKey); err == nil {
		t.Error("Open() on empty value error = nil, want error")
	}
}

func TestSeal_RawKey(t *testing.T) {
	// A raw 32-byte key works without hex decoding.
	raw := "abcdefghijklmnopqrstuvwxyz012345"
	sealed, err := Seal("data", raw)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	plain, err := Open(sealed, raw)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if plain != "data" {
		t.Errorf("Open() = %q, want %q", plain, "data")
	}
}

func TestSeal_InvalidKey(t *testing.T) {
	if _, err := Seal("data", ""); err == nil {
		t.Error("Seal() with empty key error = nil, want error")
	}
	if _, err := Seal("data", "short"); err == nil {
		t.Error("Seal() with short key error = nil, want error")
	}
}
