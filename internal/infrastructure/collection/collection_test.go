package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
)

type line struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("sqlite3", ":memory:", nil)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Sync(context.Background()); err != nil {
		t.Fatalf("store.Sync() error = %v", err)
	}
	return st
}

func mergingCollection(t *testing.T, st *store.Store) *Collection[line, int64] {
	t.Helper()
	return New(Config[line, int64]{
		Name: "cart",
		Key:  store.KeyCartItems,
		IDOf: func(l line) int64 { return l.ID },
		Merge: func(existing *line, incoming line) {
			existing.Quantity += incoming.Quantity
		},
	}, st, nil)
}

func strictCollection(t *testing.T, st *store.Store) *Collection[line, int64] {
	t.Helper()
	return New(Config[line, int64]{
		Name: "wishlist",
		Key:  store.KeyWishlist,
		IDOf: func(l line) int64 { return l.ID },
	}, st, nil)
}

func TestCollection_AddMergesDuplicates(t *testing.T) {
	c := mergingCollection(t, testStore(t))

	if err := c.Add(line{ID: 5, Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Add(line{ID: 5, Quantity: 1}); err != nil {
		t.Fatalf("Add() duplicate error = %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	got, ok := c.Get(5)
	if !ok || got.Quantity != 2 {
		t.Errorf("Get(5) = %+v, %v; want quantity 2", got, ok)
	}
}

func TestCollection_AddWithoutMergeRejectsDuplicates(t *testing.T) {
	c := strictCollection(t, testStore(t))

	if err := c.Add(line{ID: 7}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Add(line{ID: 7}); !errors.Is(err, commerce.ErrAlreadyExists) {
		t.Errorf("Add() duplicate error = %v, want ErrAlreadyExists", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCollection_RemoveAbsentIsNoop(t *testing.T) {
	c := strictCollection(t, testStore(t))

	if err := c.Remove(99); err != nil {
		t.Errorf("Remove() on absent id error = %v, want nil", err)
	}
}

func TestCollection_RemovePreservesOrder(t *testing.T) {
	c := strictCollection(t, testStore(t))

	for _, id := range []int64{1, 2, 3} {
		if err := c.Add(line{ID: id}); err != nil {
			t.Fatalf("Add(%d) error = %v", id, err)
		}
	}
	if err := c.Remove(2); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	items := c.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Errorf("Items() = %+v, want ids [1 3]", items)
	}
	if c.Contains(2) {
		t.Error("Contains(2) after Remove = true, want false")
	}
}

func TestCollection_UpdateAbsentIsNotFound(t *testing.T) {
	c := strictCollection(t, testStore(t))

	err := c.Update(42, func(l *line) { l.Quantity = 3 })
	if !errors.Is(err, commerce.ErrNotFound) {
		t.Errorf("Update() on absent id error = %v, want ErrNotFound", err)
	}
}

func TestCollection_Hydrate(t *testing.T) {
	st := testStore(t)

	first := mergingCollection(t, st)
	if err := first.Add(line{ID: 5, Quantity: 2}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// A fresh collection over the same store sees the persisted list.
	second := mergingCollection(t, st)
	second.Hydrate()
	if second.Len() != 1 {
		t.Fatalf("Len() after Hydrate = %d, want 1", second.Len())
	}
	got, _ := second.Get(5)
	if got.Quantity != 2 {
		t.Errorf("Get(5).Quantity = %d, want 2", got.Quantity)
	}
}

func TestCollection_HydrateMissingKeyYieldsEmpty(t *testing.T) {
	c := strictCollection(t, testStore(t))
	c.Hydrate()
	if c.Len() != 0 {
		t.Errorf("Len() after empty Hydrate = %d, want 0", c.Len())
	}
}

func TestCollection_ReconcileReplacesWholesale(t *testing.T) {
	c := mergingCollection(t, testStore(t))

	if err := c.Add(line{ID: 1, Quantity: 9}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Remote is authoritative: local-only item 1 is dropped, duplicates in
	// the remote list are collapsed keeping the first occurrence.
	remote := []line{{ID: 2, Quantity: 1}, {ID: 3, Quantity: 4}, {ID: 2, Quantity: 8}}
	if err := c.ReconcileWithRemote(remote); err != nil {
		t.Fatalf("ReconcileWithRemote() error = %v", err)
	}

	items := c.Items()
	if len(items) != 2 || items[0].ID != 2 || items[1].ID != 3 {
		t.Fatalf("Items() = %+v, want ids [2 3]", items)
	}
	if items[0].Quantity != 1 {
		t.Errorf("first occurrence quantity = %d, want 1", items[0].Quantity)
	}
	if c.Contains(1) {
		t.Error("Contains(1) after reconcile = true, want false")
	}
}

func TestCollection_ChangeHook(t *testing.T) {
	c := mergingCollection(t, testStore(t))

	var changes []Change
	c.OnChange(func(ch Change) { changes = append(changes, ch) })

	if err := c.Add(line{ID: 1, Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Remove(1); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	c.Reset()

	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3", len(changes))
	}
	wantOps := []string{"add", "remove", "reset"}
	for i, ch := range changes {
		if ch.Op != wantOps[i] {
			t.Errorf("change[%d].Op = %q, want %q", i, ch.Op, wantOps[i])
		}
		if ch.Collection != "cart" {
			t.Errorf("change[%d].Collection = %q, want %q", i, ch.Collection, "cart")
		}
		if ch.MutationID == "" {
			t.Errorf("change[%d].MutationID is empty", i)
		}
	}
	if changes[0].Count != 1 || changes[1].Count != 0 {
		t.Errorf("counts = %d,%d; want 1,0", changes[0].Count, changes[1].Count)
	}
}

func TestCollection_ResetLeavesDurableState(t *testing.T) {
	st := testStore(t)
	c := mergingCollection(t, st)

	if err := c.Add(line{ID: 4, Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	c.Reset()

	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", c.Len())
	}
	// Reset is in-memory only; the store key survives until ClearAll.
	if !st.Has(store.KeyCartItems) {
		t.Error("store key gone after Reset; Reset must not touch durable state")
	}
}

func TestCollection_NormalizeRunsOnMutation(t *testing.T) {
	st := testStore(t)
	var normalized int
	c := New(Config[line, int64]{
		Name:      "cart",
		Key:       store.KeyCartItems,
		IDOf:      func(l line) int64 { return l.ID },
		Normalize: func(items []line, changed int) { normalized++ },
	}, st, nil)

	if err := c.Add(line{ID: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Remove(1); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := c.ReconcileWithRemote([]line{{ID: 2}}); err != nil {
		t.Fatalf("ReconcileWithRemote() error = %v", err)
	}

	if normalized != 3 {
		t.Errorf("Normalize ran %d times, want 3", normalized)
	}
}
