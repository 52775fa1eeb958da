// Package store persists phonetic alphabet overrides in Badger.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/spellitplease/spellit/internal/logger"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance with the given database path.
// A nil logger discards store logging.
func New(path string, log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Overrides are tiny; sync each write to survive crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	return open(opts, log, path)
}

// NewInMemory creates a Store that keeps everything in memory.
// Nothing survives Close; intended for tests and ephemeral sessions.
func NewInMemory(log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts, log, ":memory:")
}

func open(opts badger.Options, log *slog.Logger, path string) (*Store, error) {
	log = logger.OrDiscard(log)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	log.Info("Badger database opened successfully", "path", path)

	return &Store{
		db:     db,
		logger: log,
	}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	s.logger.Info("Closing database connection")
	return s.db.Close()
}

// get reads the raw value stored under key.
func (s *Store) get(key []byte) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, badger.ErrDBClosed) {
		return nil, ErrClosed
	}
	return data, err
}

// set replaces the value stored under key in a single transaction.
func (s *Store) set(key, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	return err
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	return err
}
