package kvstore

import (
	"context"
	"errors"

	"fulfillment/pkg/tx/badgertx"
	"github.com/dgraph-io/badger/v4"
)

var ErrNotFound = errors.New("key not found")

// Store аналог querier для badger: если в контексте есть транзакция от badgertx,
// операции выполняются в ней, иначе в собственной короткой транзакции.
type Store struct {
	db *badger.DB
}

func New(db *badger.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := s.view(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

func (s *Store) Set(ctx context.Context, key, value []byte) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *Store) Delete(ctx context.Context, key []byte) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Scan обходит все ключи с префиксом в порядке возрастания.
func (s *Store) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error {
	return s.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				return fn(item.KeyCopy(nil), val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := badgertx.FromContext(ctx); ok {
		return fn(txn)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := badgertx.FromContext(ctx); ok {
		return fn(txn)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(fn)
}
