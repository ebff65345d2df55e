package store

import (
	"context"
	"testing"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite3", ":memory:", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	return s
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	type cartLine struct {
		ID       int64 `json:"id"`
		Quantity int   `json:"quantity"`
	}

	want := []cartLine{{ID: 5, Quantity: 2}, {ID: 9, Quantity: 1}}
	if err := s.Set(KeyCartItems, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got []cartLine
	if !s.Get(KeyCartItems, &got) {
		t.Fatal("Get() = false, want true")
	}
	if len(got) != 2 || got[0].ID != 5 || got[0].Quantity != 2 {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	s := openTestStore(t)

	var dest []string
	if s.Get("no.such.key", &dest) {
		t.Error("Get() on missing key = true, want false")
	}
}

func TestStore_GetMissingKeyWithLogger(t *testing.T) {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		t.Fatalf("NewChanneledLogger() error = %v", err)
	}

	s, err := Open("sqlite3", ":memory:", logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	var dest []string
	if s.Get("no.such.key", &dest) {
		t.Error("Get() on missing key = true, want false")
	}
}

func TestStore_GetCorruptValue(t *testing.T) {
	s := openTestStore(t)

	// Write a string, read into an int slice: decode must fail quietly.
	if err := s.Set(KeyAuthToken, "tok-001"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var dest []int
	if s.Get(KeyAuthToken, &dest) {
		t.Error("Get() with mismatched shape = true, want false")
	}
}

func TestStore_Has(t *testing.T) {
	s := openTestStore(t)

	if s.Has(KeyAuthToken) {
		t.Error("Has() before Set = true, want false")
	}
	if err := s.Set(KeyAuthToken, "tok-001"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !s.Has(KeyAuthToken) {
		t.Error("Has() after Set = false, want true")
	}
}

func TestStore_Remove(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set(KeyWishlist, []int{1, 2}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Remove(KeyWishlist); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if s.Has(KeyWishlist) {
		t.Error("Has() after Remove = true, want false")
	}

	// Removing an absent key is not an error.
	if err := s.Remove(KeyWishlist); err != nil {
		t.Errorf("Remove() on absent key error = %v, want nil", err)
	}
}

func TestStore_ClearAll(t *testing.T) {
	s := openTestStore(t)

	for _, key := range OwnedKeys() {
		if err := s.Set(key, "value"); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	for _, key := range OwnedKeys() {
		if s.Has(key) {
			t.Errorf("Has(%q) after ClearAll = true, want false", key)
		}
	}

	// Durable state is gone too, not just the warm cache.
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	for _, key := range OwnedKeys() {
		if s.Has(key) {
			t.Errorf("Has(%q) after re-sync = true, want false", key)
		}
	}
}

func TestStore_SyncLoadsDurableRows(t *testing.T) {
	s, err := Open("sqlite3", ":memory:", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if s.Synced() {
		t.Error("Synced() before Sync = true, want false")
	}

	// Write before Sync: warm cache and durable row both exist.
	if err := s.Set(KeyAuthToken, "tok-001"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !s.Synced() {
		t.Error("Synced() after Sync = false, want true")
	}

	var token string
	if !s.Get(KeyAuthToken, &token) || token != "tok-001" {
		t.Errorf("Get() after Sync = %q, want %q", token, "tok-001")
	}
}

func TestOwnedKeys_Complete(t *testing.T) {
	want := map[string]bool{
		KeyAuthToken:   true,
		KeyAuthProfile: true,
		KeyCartItems:   true,
		KeyWishlist:    true,
		KeyAddresses:   true,
		KeyAppPin:      true,
	}

	keys := OwnedKeys()
	if len(keys) != len(want) {
		t.Fatalf("OwnedKeys() len = %d, want %d", len(keys), len(want))
	}
	for _, key := range keys {
		if !want[key] {
			t.Errorf("OwnedKeys() contains unexpected key %q", key)
		}
	}
}
