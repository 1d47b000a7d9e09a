package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "fulfillment/internal/app"
	"fulfillment/internal/handlers/rest/catalog_medicine_put"
	"fulfillment/internal/handlers/rest/catalog_pharmacy_put"
	"fulfillment/internal/handlers/rest/dispatch_active_get"
	"fulfillment/internal/handlers/rest/dispatch_advance_post"
	"fulfillment/internal/handlers/rest/dispatch_available_get"
	"fulfillment/internal/handlers/rest/dispatch_claim_post"
	"fulfillment/internal/handlers/rest/dispatch_fail_post"
	"fulfillment/internal/handlers/rest/healthcheck_head"
	"fulfillment/internal/handlers/rest/order_get"
	"fulfillment/internal/handlers/rest/order_prescription_post"
	"fulfillment/internal/handlers/rest/order_read_post"
	"fulfillment/internal/handlers/rest/order_status_post"
	"fulfillment/internal/handlers/rest/orders_get"
	"fulfillment/internal/handlers/rest/orders_post"
	"fulfillment/internal/handlers/rest/ping_get"
	"fulfillment/internal/handlers/rest/review_accept_post"
	"fulfillment/internal/handlers/rest/review_failed_get"
	"fulfillment/internal/handlers/rest/review_get"
	"fulfillment/internal/handlers/rest/review_redispatch_post"
	"fulfillment/internal/handlers/rest/review_reject_post"
	"fulfillment/internal/handlers/rest/review_start_post"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/dotenv"
	"fulfillment/internal/pkg/grpchealth"
	"fulfillment/internal/pkg/kafka"
	metrics_system "fulfillment/internal/pkg/metrics"
	"fulfillment/internal/pkg/middlewares/graceful_shutdown"
	"fulfillment/internal/pkg/middlewares/metrics"
	"fulfillment/internal/pkg/middlewares/rate_limiter"
	"fulfillment/internal/pkg/middlewares/timeout"
	"fulfillment/internal/pkg/storage"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/logger/zap_adapter"
	"fulfillment/pkg/token_bucket"
	"github.com/IBM/sarama"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			stdlog.Fatalf("failed to load .env file: %v", err)
		}
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting fulfillment application")

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	store, err := storage.Open(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			runLog.Error("failed to close storage", logger.NewField("error", err))
		}
	}()

	// без брокеров сигналы пула пишутся в лог
	var producer sarama.SyncProducer
	if cfg.Kafka.Brokers != "" {
		producer, err = kafka.NewSyncProducer(ctx, log, &cfg.Kafka, kafka.SplitBrokers(cfg.Kafka.Brokers))
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				runLog.Error("failed to close kafka producer", logger.NewField("error", err))
			}
		}()
	}

	// ongoingCtx используется для BaseContext и фоновых задач и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	businessApp, err := application.InitializeApplication(ongoingCtx, log, store, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
			logger.NewField("storage", cfg.Storage.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	// grpc health сервер
	var healthServer *grpchealth.Server
	var healthServerErr chan error
	if cfg.Server.GRPCHealthPort != "" {
		healthServer = grpchealth.New(log)

		healthServerErr = make(chan error, 1)
		go func() {
			defer close(healthServerErr)
			if err := healthServer.ListenAndServe(cfg.Server.GRPCHealthPort); err != nil {
				healthServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("grpc health server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	if healthServer != nil {
		healthServer.SetServing(false)
	}

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	if healthServer != nil {
		healthServer.Shutdown()
	}

	// останавливает и фоновые задачи
	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/orders", orders_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/orders", orders_get.New(log, app.ServiceLedger)).Methods("GET")
	router.Handle("/orders/{id}", order_get.New(log, app.ServiceLedger)).Methods("GET")
	router.Handle("/orders/{id}/prescription", order_prescription_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/orders/{id}/read", order_read_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/orders/{id}/status", order_status_post.New(log, app.ServiceLedger)).Methods("POST")

	// /review/failed регистрируется раньше /review/{id}/...
	router.Handle("/review", review_get.New(log, app.ServiceReview)).Methods("GET")
	router.Handle("/review/failed", review_failed_get.New(log, app.ServiceReview)).Methods("GET")
	router.Handle("/review/{id}/start", review_start_post.New(log, app.ServiceReview)).Methods("POST")
	router.Handle("/review/{id}/accept", review_accept_post.New(log, app.ServiceReview)).Methods("POST")
	router.Handle("/review/{id}/reject", review_reject_post.New(log, app.ServiceReview)).Methods("POST")
	router.Handle("/review/{id}/redispatch", review_redispatch_post.New(log, app.ServiceReview)).Methods("POST")

	router.Handle("/dispatch/available", dispatch_available_get.New(log, app.ServiceDispatch)).Methods("GET")
	router.Handle("/dispatch/active", dispatch_active_get.New(log, app.ServiceDispatch)).Methods("GET")
	router.Handle("/dispatch/{id}/claim", dispatch_claim_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/dispatch/{id}/advance", dispatch_advance_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/dispatch/{id}/fail", dispatch_fail_post.New(log, app.ServiceDispatch)).Methods("POST")

	router.Handle("/catalog/medicines/{id}", catalog_medicine_put.New(log, app.ServiceCatalog)).Methods("PUT")
	router.Handle("/catalog/pharmacies/{id}", catalog_pharmacy_put.New(log, app.ServiceCatalog)).Methods("PUT")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
