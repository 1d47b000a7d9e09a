//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/storage"
	catalogService "fulfillment/internal/service/catalog"
	dispatchService "fulfillment/internal/service/dispatch"
	ledgerService "fulfillment/internal/service/ledger"
	reviewService "fulfillment/internal/service/review"
	"fulfillment/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/google/wire"
)

// InitializeApplication для HTTP сервиса (cmd/service).
// producer nil, если kafka не настроена: сигналы пула уходят в лог.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	store *storage.Storage,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxRetrier,

		provideCatalogService,
		provideLedgerService,
		provideReviewService,
		provideDispatchService,

		providePoolAlertPublisher,
		provideNotificationService,
		providePoolWatchTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceLedger), new(*ledgerService.Ledger)),
		wire.Bind(new(ServiceReview), new(*reviewService.Review)),
		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatch)),
		wire.Bind(new(ServiceCatalog), new(*catalogService.Catalog)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-events).
func InitializeKafkaWorkerApp(
	store *storage.Storage,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxRetrier,

		provideCatalogService,
		provideLedgerService,

		wire.Struct(new(KafkaWorkerApp), "*"),

		wire.Bind(new(WorkerLedger), new(*ledgerService.Ledger)),
		wire.Bind(new(WorkerCatalog), new(*catalogService.Catalog)),
	)
	return nil, nil
}
