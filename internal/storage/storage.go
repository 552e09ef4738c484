package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyPerftPrefix = "perft/"

// ErrNotFound is returned when no result is stored for a key.
var ErrNotFound = errors.New("not found")

// DivideRecord is the node count below one root move.
type DivideRecord struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// PerftResult is one stored perft run.
type PerftResult struct {
	FEN        string         `json:"fen"`
	Depth      int            `json:"depth"`
	Nodes      uint64         `json:"nodes"`
	Divide     []DivideRecord `json:"divide,omitempty"`
	Elapsed    time.Duration  `json:"elapsed"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in dir. An empty dir opens an in-memory
// database that is discarded on Close.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft store: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// perftKey orders results by FEN, then by depth.
func perftKey(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("%s%s/%02d", keyPerftPrefix, fen, depth))
}

// SavePerft stores a perft result, replacing any earlier one for the same
// FEN and depth.
func (s *Storage) SavePerft(r *PerftResult) error {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(r.FEN, r.Depth), data)
	})
}

// LoadPerft loads the stored result for a FEN and depth.
func (s *Storage) LoadPerft(fen string, depth int) (*PerftResult, error) {
	var r PerftResult

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(fen, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: perft %d %s", ErrNotFound, depth, fen)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// ListPerft returns every stored result for a FEN in increasing depth.
func (s *Storage) ListPerft(fen string) ([]*PerftResult, error) {
	prefix := []byte(keyPerftPrefix + fen + "/")
	var results []*PerftResult

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var r PerftResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			results = append(results, &r)
		}
		return nil
	})

	return results, err
}

// DeletePerft removes every stored result for a FEN.
func (s *Storage) DeletePerft(fen string) error {
	prefix := []byte(keyPerftPrefix + fen + "/")

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
