package app

import (
	"context"
	"errors"
	"time"

	gatewayKafka "fulfillment/internal/gateway/kafka/pool_alerts"
	gatewayLog "fulfillment/internal/gateway/log/pool_alerts"
	"fulfillment/internal/handlers/kafka-consumer/catalog_changed"
	"fulfillment/internal/handlers/kafka-consumer/prescription_uploaded"
	"fulfillment/internal/handlers/rest/catalog_medicine_put"
	"fulfillment/internal/handlers/rest/catalog_pharmacy_put"
	"fulfillment/internal/handlers/rest/dispatch_active_get"
	"fulfillment/internal/handlers/rest/dispatch_advance_post"
	"fulfillment/internal/handlers/rest/dispatch_available_get"
	"fulfillment/internal/handlers/rest/dispatch_claim_post"
	"fulfillment/internal/handlers/rest/dispatch_fail_post"
	"fulfillment/internal/handlers/rest/order_get"
	"fulfillment/internal/handlers/rest/order_prescription_post"
	"fulfillment/internal/handlers/rest/order_read_post"
	"fulfillment/internal/handlers/rest/order_status_post"
	"fulfillment/internal/handlers/rest/orders_get"
	"fulfillment/internal/handlers/rest/orders_post"
	"fulfillment/internal/handlers/rest/review_accept_post"
	"fulfillment/internal/handlers/rest/review_failed_get"
	"fulfillment/internal/handlers/rest/review_get"
	"fulfillment/internal/handlers/rest/review_redispatch_post"
	"fulfillment/internal/handlers/rest/review_reject_post"
	"fulfillment/internal/handlers/rest/review_start_post"
	"fulfillment/internal/handlers/tasks/pool_watch"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/storage"
	catalogService "fulfillment/internal/service/catalog"
	dispatchService "fulfillment/internal/service/dispatch"
	ledgerService "fulfillment/internal/service/ledger"
	notificationService "fulfillment/internal/service/notification"
	reviewService "fulfillment/internal/service/review"
	"fulfillment/pkg/background"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
	"fulfillment/pkg/tx"
	"github.com/IBM/sarama"
)

// параметры повтора транзакции после конфликта сериализации
const (
	txRetryInitialInterval = 10 * time.Millisecond
	txRetryMaxInterval     = 200 * time.Millisecond
	txRetryMaxElapsedTime  = 2 * time.Second
	txRetryRandomization   = 0.5
	txRetryMultiplier      = 2
)

type Application struct {
	ServiceLedger     ServiceLedger
	ServiceReview     ServiceReview
	ServiceDispatch   ServiceDispatch
	ServiceCatalog    ServiceCatalog
	BackgroundWorkers *background.Worker
}

type ServiceLedger interface {
	orders_post.Service
	order_get.Service
	orders_get.Service
	order_prescription_post.Service
	order_read_post.Service
	order_status_post.Service
}

type ServiceReview interface {
	review_get.Service
	review_start_post.Service
	review_accept_post.Service
	review_reject_post.Service
	review_failed_get.Service
	review_redispatch_post.Service
}

type ServiceDispatch interface {
	dispatch_available_get.Service
	dispatch_active_get.Service
	dispatch_claim_post.Service
	dispatch_advance_post.Service
	dispatch_fail_post.Service
}

type ServiceCatalog interface {
	catalog_medicine_put.Service
	catalog_pharmacy_put.Service
}

type KafkaWorkerApp struct {
	ServiceLedger  WorkerLedger
	ServiceCatalog WorkerCatalog
}

type WorkerLedger interface {
	prescription_uploaded.Service
}

type WorkerCatalog interface {
	catalog_changed.Service
}

// provideTxRetrier повторяет только транзакции, проигравшие конфликт сериализации.
func provideTxRetrier() *backoff_adapter.Retrier {
	return backoff_adapter.New(retrier.Config{
		InitialInterval: txRetryInitialInterval,
		MaxInterval:     txRetryMaxInterval,
		MaxElapsedTime:  txRetryMaxElapsedTime,
		Randomization:   txRetryRandomization,
		Multiplier:      txRetryMultiplier,
		ShouldRetry: func(err error) bool {
			return errors.Is(err, tx.ErrConflict)
		},
	})
}

func provideCatalogService(store *storage.Storage) *catalogService.Catalog {
	return catalogService.New(store.Catalog)
}

func provideLedgerService(
	store *storage.Storage,
	catalog *catalogService.Catalog,
	txRetrier *backoff_adapter.Retrier,
	cfg *config.Config,
) *ledgerService.Ledger {
	return ledgerService.New(
		store.Orders,
		catalog,
		store.TxManager,
		txRetrier,
		ledgerService.Config{PerPharmacyFee: cfg.Pricing.PerPharmacyFee},
	)
}

func provideReviewService(
	store *storage.Storage,
	txRetrier *backoff_adapter.Retrier,
	cfg *config.Config,
) *reviewService.Review {
	return reviewService.New(
		store.Orders,
		store.TxManager,
		txRetrier,
		reviewService.Config{MaxDeliveryAttempts: cfg.Dispatch.MaxDeliveryAttempts},
	)
}

func provideDispatchService(store *storage.Storage, txRetrier *backoff_adapter.Retrier) *dispatchService.Dispatch {
	return dispatchService.New(store.Orders, store.TxManager, txRetrier)
}

func providePoolAlertPublisher(log logger.Logger, producer sarama.SyncProducer, cfg *config.Config) notificationService.Publisher {
	if producer == nil {
		return gatewayLog.New(log)
	}
	return gatewayKafka.New(producer, cfg.Kafka.Topics.PoolAlerts)
}

func provideNotificationService(
	dispatch *dispatchService.Dispatch,
	publisher notificationService.Publisher,
) *notificationService.Service {
	return notificationService.New(dispatch, publisher)
}

func providePoolWatchTask(
	log logger.Logger,
	notification *notificationService.Service,
	cfg *config.Config,
) *pool_watch.PoolWatch {
	return pool_watch.NewPoolWatch(log, notification, cfg.Tasks.PoolWatchInterval)
}

func provideTaskList(poolWatchTask *pool_watch.PoolWatch) []background.Task {
	return []background.Task{
		poolWatchTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
