// Package collection provides the reusable ordered, deduplicated domain
// collection backing the cart, wishlist, and address stores: local mutation
// with optimistic visibility, synchronous persistence, and wholesale remote
// reconciliation.
package collection

import (
	"sync"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/security"
)

// Change describes one applied mutation, delivered to the change hook after
// the in-memory state has been updated.
type Change struct {
	Collection string `json:"collection"`
	Op         string `json:"op"`
	MutationID string `json:"mutationId"`
	Count      int    `json:"count"`
}

// Config wires one collection instantiation.
type Config[T any, K comparable] struct {
	// Name identifies the collection in logs and change events.
	Name string
	// Key is the persistent store namespace the collection owns.
	Key string
	// IDOf extracts the identity of an item.
	IDOf func(T) K
	// Merge, when non-nil, folds a re-added item into the existing entry
	// (cart quantity merge). When nil, re-adding is ErrAlreadyExists.
	Merge func(existing *T, incoming T)
	// Normalize, when non-nil, restores multi-element invariants after every
	// mutation (the address default rule). The changed index is -1 when no
	// single element can be singled out (reconcile, remove).
	Normalize func(items []T, changed int)
}

// Collection is an ordered set of domain records unique by identity. All
// reads are synchronous against in-memory state; every mutation is applied
// in memory first and then persisted, so callers observe new state
// immediately and still learn about durable write failures.
type Collection[T any, K comparable] struct {
	cfg    Config[T, K]
	store  *store.Store
	logger *logging.ChanneledLogger

	mu       sync.Mutex
	items    []T
	index    map[K]int
	onChange func(Change)
}

// New creates an empty collection bound to its store namespace.
func New[T any, K comparable](cfg Config[T, K], st *store.Store, logger *logging.ChanneledLogger) *Collection[T, K] {
	return &Collection[T, K]{
		cfg:    cfg,
		store:  st,
		logger: logger,
		index:  make(map[K]int),
	}
}

// OnChange registers the change hook. At most one hook is held; the services
// fan changes out through the event broadcaster.
func (c *Collection[T, K]) OnChange(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Hydrate loads the persisted list. It always succeeds: an absent or
// unreadable record yields an empty collection.
func (c *Collection[T, K]) Hydrate() {
	start := time.Now()

	var items []T
	c.store.Get(c.cfg.Key, &items)

	c.mu.Lock()
	c.items = items
	c.rebuildIndexLocked()
	count := len(c.items)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Sync().Info("Collection hydrated", "collection", c.cfg.Name, "count", count, "duration", time.Since(start))
	}
}

// Add appends item, or applies the merge rule when the identity is already
// present. Without a merge rule a duplicate add returns ErrAlreadyExists.
// A returned StorageError means the mutation is visible in memory but not
// durable; callers must not report success.
func (c *Collection[T, K]) Add(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.cfg.IDOf(item)
	changed := -1
	if pos, ok := c.index[id]; ok {
		if c.cfg.Merge == nil {
			return commerce.ErrAlreadyExists
		}
		c.cfg.Merge(&c.items[pos], item)
		changed = pos
	} else {
		c.items = append(c.items, item)
		changed = len(c.items) - 1
		c.index[id] = changed
	}

	if c.cfg.Normalize != nil {
		c.cfg.Normalize(c.items, changed)
	}

	return c.persistLocked("add")
}

// Remove deletes the entry with the given identity. Removing an absent
// identity is a no-op, not an error.
func (c *Collection[T, K]) Remove(id K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[id]
	if !ok {
		return nil
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	c.rebuildIndexLocked()

	if c.cfg.Normalize != nil {
		c.cfg.Normalize(c.items, -1)
	}

	return c.persistLocked("remove")
}

// Update applies a partial mutation to the entry with the given identity and
// re-runs invariant normalization across the whole list in the same atomic
// step. Returns ErrNotFound when the identity is absent.
func (c *Collection[T, K]) Update(id K, apply func(*T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[id]
	if !ok {
		return commerce.ErrNotFound
	}

	apply(&c.items[pos])

	if c.cfg.Normalize != nil {
		c.cfg.Normalize(c.items, pos)
	}

	return c.persistLocked("update")
}

// Contains reports membership by identity.
func (c *Collection[T, K]) Contains(id K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[id]
	return ok
}

// Get returns a copy of the entry with the given identity.
func (c *Collection[T, K]) Get(id K) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	pos, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return c.items[pos], true
}

// Items returns a copy of the list in insertion order.
func (c *Collection[T, K]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries.
func (c *Collection[T, K]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ReconcileWithRemote replaces the whole list with the fetched remote state.
// The remote list is authoritative: any optimistic local mutation the remote
// state does not reflect is lost. Freshness over unconfirmed edits.
func (c *Collection[T, K]) ReconcileWithRemote(remote []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Deduplicate defensively; the remote list owns ordering.
	deduped := make([]T, 0, len(remote))
	seen := make(map[K]bool, len(remote))
	for _, item := range remote {
		id := c.cfg.IDOf(item)
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, item)
	}

	c.items = deduped
	c.rebuildIndexLocked()

	if c.cfg.Normalize != nil {
		c.cfg.Normalize(c.items, -1)
	}

	return c.persistLocked("reconcile")
}

// Reset drops the in-memory list without touching durable state. Used on
// logout after the store keys are cleared.
func (c *Collection[T, K]) Reset() {
	c.mu.Lock()
	c.items = nil
	c.index = make(map[K]int)
	fn := c.onChange
	count := 0
	c.mu.Unlock()

	if fn != nil {
		fn(Change{Collection: c.cfg.Name, Op: "reset", MutationID: security.GenerateULID(), Count: count})
	}
}

func (c *Collection[T, K]) rebuildIndexLocked() {
	c.index = make(map[K]int, len(c.items))
	for i, item := range c.items {
		c.index[c.cfg.IDOf(item)] = i
	}
}

// persistLocked writes the list under the collection's namespace key and
// notifies the change hook. Called with the mutation already applied.
func (c *Collection[T, K]) persistLocked(op string) error {
	mutationID := security.GenerateULID()

	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)

	err := c.store.Set(c.cfg.Key, snapshot)
	if err != nil {
		if c.logger != nil {
			c.logger.Sync().Error("Collection persist failed",
				"collection", c.cfg.Name, "op", op, "mutationId", mutationID, "error", err.Error())
		}
	} else if c.logger != nil {
		c.logger.Sync().Debug("Collection persisted",
			"collection", c.cfg.Name, "op", op, "mutationId", mutationID, "count", len(snapshot))
	}

	if c.onChange != nil {
		c.onChange(Change{Collection: c.cfg.Name, Op: op, MutationID: mutationID, Count: len(snapshot)})
	}
	return err
}
