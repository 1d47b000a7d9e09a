package storage

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/badgerdb"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/postgres"
	catalogRepo "fulfillment/internal/repository/catalog"
	"fulfillment/internal/repository/kv"
	orderRepo "fulfillment/internal/repository/order"
	"fulfillment/pkg/kvstore"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/querier"
	"fulfillment/pkg/tx"
	"fulfillment/pkg/tx/badgertx"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
)

type OrderRepository interface {
	Create(ctx context.Context, order entities.Order) error
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Save(ctx context.Context, order entities.Order) error
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	ClaimDelivery(ctx context.Context, orderID, driverID string, at time.Time) error
}

type CatalogRepository interface {
	GetMedicine(ctx context.Context, id string) (*entities.Medicine, error)
	GetPharmacy(ctx context.Context, id string) (*entities.Pharmacy, error)
	UpsertMedicine(ctx context.Context, medicine entities.Medicine) error
	UpsertPharmacy(ctx context.Context, pharmacy entities.Pharmacy) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage репозитории и менеджер транзакций выбранного бэкенда.
type Storage struct {
	Orders    OrderRepository
	Catalog   CatalogRepository
	TxManager TxManager

	close func() error
}

// Open поднимает хранилище по STORAGE_DRIVER.
func Open(ctx context.Context, log logger.Logger, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(ctx, log, cfg)
	case config.StorageDriverBadger:
		return openBadger(log, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func openPostgres(ctx context.Context, log logger.Logger, cfg *config.Config) (*Storage, error) {
	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	q := querier.New(pool, pgxv5.DefaultCtxGetter)

	return &Storage{
		Orders:    orderRepo.New(q),
		Catalog:   catalogRepo.New(q),
		TxManager: tx.New(pool),
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openBadger(log logger.Logger, cfg *config.Config) (*Storage, error) {
	db, err := badgerdb.Open(log, cfg.Storage.BadgerPath)
	if err != nil {
		return nil, err
	}

	store := kvstore.New(db)

	return &Storage{
		Orders:    kv.NewOrderRepository(store),
		Catalog:   kv.NewCatalogRepository(store),
		TxManager: badgertx.New(db),
		close: func() error {
			if err := db.Close(); err != nil {
				return fmt.Errorf("close badger: %w", err)
			}
			return nil
		},
	}, nil
}
