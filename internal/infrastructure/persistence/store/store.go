// Package store provides the namespaced key/value persistent store backing
// the sync layer, with a warm in-memory cache kept consistent with durable
// sqlite storage.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Store is the durable key/value store. All values are JSON documents keyed
// by a fixed namespace string. Reads are served from the warm cache after
// Sync; writes go to the warm cache first and then to sqlite, so callers
// observe the new state immediately and still learn about durable failures.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	warm   map[string]json.RawMessage
	synced bool
	logger *logging.ChanneledLogger
}

// Open establishes the sqlite connection and prepares the schema. The libsql
// driver is registered as well so a hosted profile can point STORE_DRIVER at
// a remote replica without code changes.
func Open(driverName, dataSourceName string, logger *logging.ChanneledLogger) (*Store, error) {
	start := time.Now()
	if logger != nil {
		logger.Storage().Debug("Opening persistent store", "driver", driverName)
	}

	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		if logger != nil {
			logger.Storage().Error("Failed to open persistent store", "error", err.Error(), "driver", driverName)
		}
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		if logger != nil {
			logger.Storage().Error("Persistent store ping failed", "error", err.Error(), "driver", driverName)
		}
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := ensureSchema(db); err != nil {
		return nil, &StorageError{Op: "schema", Err: err}
	}

	if logger != nil {
		logger.Storage().Info("Persistent store opened", "driver", driverName, "duration", time.Since(start))
	}

	return &Store{
		db:     db,
		warm:   make(map[string]json.RawMessage),
		logger: logger,
	}, nil
}

// Sync loads every persisted row into the warm cache. It must complete before
// the first read during bootstrap; later calls refresh the cache wholesale.
func (s *Store) Sync(ctx context.Context) error {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv_records`)
	if err != nil {
		if s.logger != nil {
			s.logger.Storage().Error("Warm cache sync failed", "error", err.Error())
		}
		return &StorageError{Op: "sync", Err: err}
	}
	defer rows.Close()

	warm := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return &StorageError{Op: "sync", Err: err}
		}
		warm[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return &StorageError{Op: "sync", Err: err}
	}

	s.mu.Lock()
	s.warm = warm
	s.synced = true
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Storage().Info("Warm cache synced", "keys", len(warm), "duration", time.Since(start))
	}
	return nil
}

// Synced reports whether the warm cache reflects durable contents.
func (s *Store) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// Get decodes the value under key into dest. It never fails upward: a missing
// key, an unsynced cache, or a corrupt value yields false and the condition
// is logged, not surfaced.
func (s *Store) Get(key string, dest any) bool {
	start := time.Now()

	s.mu.RLock()
	raw, ok := s.warm[key]
	s.mu.RUnlock()

	if !ok {
		if s.logger != nil {
			s.logger.Storage().Debug("Cache miss", "key", key, "duration", time.Since(start))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		if s.logger != nil {
			s.logger.Storage().Warn("Discarding undecodable record", "key", key, "error", err.Error())
		}
		return false
	}

	if s.logger != nil {
		s.logger.LogStorageOperation("get", key, true, time.Since(start))
	}
	return true
}

// Has reports whether a value is persisted under key.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.warm[key]
	return ok
}

// Set encodes value as JSON and persists it under key. The warm cache is
// updated before the durable write so readers observe the mutation
// immediately; if the durable write fails the caller gets a StorageError and
// must not report success.
func (s *Store) Set(key string, value any) error {
	start := time.Now()

	raw, err := json.Marshal(value)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}

	s.mu.Lock()
	s.warm[key] = raw
	s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO kv_records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if s.logger != nil {
			s.logger.LogStorageOperation("set", key, false, time.Since(start))
		}
		return &StorageError{Op: "set", Key: key, Err: err}
	}

	duration := time.Since(start)
	if s.logger != nil {
		s.logger.LogStorageOperation("set", key, true, duration)
		if duration > config.SlowWriteBudget {
			s.logger.LogSlowWrite(key, duration)
		}
	}
	return nil
}

// Remove deletes the value under key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	start := time.Now()

	s.mu.Lock()
	delete(s.warm, key)
	s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM kv_records WHERE key = ?`, key); err != nil {
		if s.logger != nil {
			s.logger.LogStorageOperation("remove", key, false, time.Since(start))
		}
		return &StorageError{Op: "remove", Key: key, Err: err}
	}

	if s.logger != nil {
		s.logger.LogStorageOperation("remove", key, true, time.Since(start))
	}
	return nil
}

// ClearAll wipes every key owned by the layer, durable and warm alike. Used
// by logout; the session transition does not wait on anything else.
func (s *Store) ClearAll() error {
	start := time.Now()

	s.mu.Lock()
	s.warm = make(map[string]json.RawMessage)
	s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM kv_records`); err != nil {
		if s.logger != nil {
			s.logger.LogStorageOperation("clear_all", "", false, time.Since(start))
		}
		return &StorageError{Op: "clear_all", Err: err}
	}

	if s.logger != nil {
		s.logger.LogStorageOperation("clear_all", "", true, time.Since(start))
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
