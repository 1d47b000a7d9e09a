package badgertx

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/pkg/tx"
	"github.com/dgraph-io/badger/v4"
)

type ctxKey struct{}

// Manager менеджер транзакций для badger. Транзакция кладётся в контекст,
// вложенный Do переиспользует внешнюю транзакцию.
type Manager struct {
	db *badger.DB
}

func New(db *badger.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := FromContext(ctx); ok {
		return fn(ctx)
	}

	txn := m.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(context.WithValue(ctx, ctxKey{}, txn)); err != nil {
		return translate(err)
	}

	if err := txn.Commit(); err != nil {
		return translate(err)
	}
	return nil
}

// FromContext возвращает транзакцию, открытую Manager.Do, если она есть.
func FromContext(ctx context.Context) (*badger.Txn, bool) {
	txn, ok := ctx.Value(ctxKey{}).(*badger.Txn)
	return txn, ok
}

func translate(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: %w", tx.ErrConflict, err)
	}
	return err
}
