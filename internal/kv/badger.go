package kv

import (
	"github.com/dgraph-io/badger/v4"
)

// badgerStore backs the collaborator with an embedded BadgerDB, for users
// who keep a long-lived writing directory rather than a single state file.
type badgerStore struct {
	db *badger.DB
}

// OpenBadger opens a Badger-backed store rooted at dir.
func OpenBadger(dir string) (Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

// OpenBadgerInMemory opens a Badger store with no disk footprint, for tests.
func OpenBadgerInMemory() (Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) GetItem(key string) (string, bool) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = string(raw)
		return nil
	})
	if err != nil {
		// A read failure is indistinguishable from absence for callers;
		// they fall back to empty state either way.
		return "", false
	}
	return value, true
}

func (s *badgerStore) SetItem(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
