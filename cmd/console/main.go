package main

import (
	"context"
	"errors"
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

	application "agritrack/internal/app"
	"agritrack/internal/handlers/rest/auth_login_post"
	"agritrack/internal/handlers/rest/auth_logout_post"
	"agritrack/internal/handlers/rest/auth_register_post"
	"agritrack/internal/handlers/rest/dashboard_view_delete"
	"agritrack/internal/handlers/rest/delivery_confirm_post"
	"agritrack/internal/handlers/rest/fleet_get"
	"agritrack/internal/handlers/rest/healthcheck_head"
	"agritrack/internal/handlers/rest/incident_post"
	"agritrack/internal/handlers/rest/incidents_get"
	"agritrack/internal/handlers/rest/ping_get"
	"agritrack/internal/handlers/rest/shipment_create_post"
	"agritrack/internal/handlers/rest/summary_get"
	"agritrack/internal/handlers/rest/trip_arrival_delete"
	"agritrack/internal/handlers/rest/trip_arrival_post"
	"agritrack/internal/handlers/rest/trip_delete"
	"agritrack/internal/handlers/rest/trip_get"
	"agritrack/internal/handlers/rest/trip_handoff_get"
	"agritrack/internal/handlers/rest/trip_pickup_post"
	"agritrack/internal/handlers/ws/arrivals_stream"
	"agritrack/internal/pkg/config"
	"agritrack/internal/pkg/dotenv"
	"agritrack/internal/pkg/httpclient"
	"agritrack/internal/pkg/kafka"
	"agritrack/internal/pkg/middlewares/graceful_shutdown"
	"agritrack/internal/pkg/middlewares/guard"
	"agritrack/internal/pkg/middlewares/metrics"
	"agritrack/internal/pkg/middlewares/rate_limiter"
	"agritrack/internal/pkg/middlewares/timeout"
	"agritrack/pkg/logger"
	"agritrack/pkg/logger/zap_adapter"
	"agritrack/pkg/token_bucket"

	"github.com/IBM/sarama"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var envErr error
	_, statErr := os.Stat(".env")
	if statErr == nil {
		envErr = dotenv.Load()
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

	mainLog.Info("starting agritrack console")

	switch {
	case statErr != nil:
		mainLog.Warn("No .env file found, using system environment variables")
	case envErr != nil:
		mainLog.Error("failed to load .env file", logger.NewField("error", envErr))
		return
	}

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

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно наследуются от context.Background()
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	client, err := httpclient.NewClient(ctx, log, &cfg.ShipmentService)
	if err != nil {
		return fmt.Errorf("shipment service: %w", err)
	}
	defer client.CloseIdleConnections()

	var producer sarama.SyncProducer
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				runLog.Error("failed to close kafka producer", logger.NewField("error", err))
			}
		}()
	} else {
		runLog.Info("kafka disabled, arrivals go to websocket subscribers only")
	}

	consoleApp, err := application.InitializeApplication(ctx, log, client, producer, cfg)
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	// представления останавливаются до закрытия продюсера и HTTP клиента
	defer consoleApp.Close()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, consoleApp, cfg.Server),
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
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, consoleApp),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second,
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
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал при выключенном pprof, кейс не срабатывает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

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

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))

	// служебные маршруты вне проверки сессии
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Views)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	site := router.PathPrefix("/").Subrouter()
	site.Use(guard.Middleware(log, app.Guard, app.Sessions))

	site.Handle("/login", auth_login_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)
	site.Handle("/register", auth_register_post.New(log, app.Console)).Methods(http.MethodPost)
	site.Handle("/logout", auth_logout_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)

	site.Handle("/farmer/shipments", shipment_create_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)

	site.Handle("/driver/trip", trip_get.New(log, app.Console, app.Sessions)).Methods(http.MethodGet)
	site.Handle("/driver/trip", trip_delete.New(log, app.Console, app.Sessions)).Methods(http.MethodDelete)
	site.Handle("/driver/trip/pickup", trip_pickup_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)
	site.Handle("/driver/trip/arrival", trip_arrival_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)
	site.Handle("/driver/trip/arrival", trip_arrival_delete.New(log, app.Console, app.Sessions)).Methods(http.MethodDelete)
	site.Handle("/driver/trip/handoff", trip_handoff_get.New(log, app.Console, app.Sessions)).Methods(http.MethodGet)
	site.Handle("/driver/incidents", incidents_get.New(log, app.Console, app.Sessions)).Methods(http.MethodGet)
	site.Handle("/driver/incidents", incident_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)

	site.Handle("/dashboard/fleet", fleet_get.New(log, app.Console, app.Sessions)).Methods(http.MethodGet)
	site.Handle("/dashboard/summary", summary_get.New(log, app.Console, app.Sessions)).Methods(http.MethodGet)
	site.Handle("/dashboard/arrivals", arrivals_stream.New(log, app.Console, app.Sessions)).Methods(http.MethodGet)
	site.Handle("/dashboard/deliveries", delivery_confirm_post.New(log, app.Console, app.Sessions)).Methods(http.MethodPost)
	site.Handle("/dashboard/view", dashboard_view_delete.New(log, app.Console, app.Sessions)).Methods(http.MethodDelete)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, app *application.Application) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Views)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
