package app

import (
	"context"
	"net/http"
	"time"

	"agritrack/internal/entities"
	"agritrack/internal/gateway/http/shipment"
	"agritrack/internal/handlers/tasks/views_evict"
	"agritrack/internal/pkg/config"
	"agritrack/internal/pkg/kafka"
	"agritrack/internal/pkg/metrics"
	"agritrack/internal/pkg/websession"
	"agritrack/internal/service/console"
	"agritrack/internal/service/fleet"
	"agritrack/internal/service/guard"
	"agritrack/internal/service/views"
	"agritrack/pkg/background"
	"agritrack/pkg/logger"

	"github.com/IBM/sarama"
)

const viewsEvictInterval = time.Minute

type Application struct {
	Console           *console.Console
	Views             *views.Registry
	Sessions          *websession.Store
	Guard             *guard.Guard
	BackgroundWorkers *background.Worker
}

// Close останавливает фоновые задачи и все опросы представлений.
func (a *Application) Close() {
	a.BackgroundWorkers.Stop()
	a.Views.Close()
}

func provideShipmentGateway(cfg *config.Config, client *http.Client) *shipment.Gateway {
	return shipment.New(cfg.ShipmentService.BaseURL, client)
}

func provideViewGateways(gateway *shipment.Gateway) views.GatewayFunc {
	return func(session entities.Session) views.Gateway {
		return gateway.WithSession(session)
	}
}

func provideConsoleGateways(gateway *shipment.Gateway) console.GatewayFunc {
	return func(session entities.Session) console.Gateway {
		return gateway.WithSession(session)
	}
}

// provideNotifiers без продюсера возвращает пустой список: прибытия видны только в websocket.
func provideNotifiers(log logger.Logger, producer sarama.SyncProducer, cfg *config.Config) []fleet.Notifier {
	if producer == nil {
		return nil
	}
	return []fleet.Notifier{
		kafka.NewArrivalPublisher(log, producer, cfg.Kafka.ArrivalsTopic),
	}
}

func provideViewsRegistry(
	log logger.Logger,
	gateways views.GatewayFunc,
	estimator fleet.Estimator,
	cfg *config.Config,
	notifiers []fleet.Notifier,
) *views.Registry {
	return views.NewRegistry(log, gateways, estimator, cfg.Polling, notifiers...)
}

func provideSessions(cfg *config.Config) *websession.Store {
	return websession.New(&cfg.Session)
}

func provideViewsEvictTask(log logger.Logger, registry *views.Registry, cfg *config.Config) *views_evict.ViewsEvict {
	return views_evict.NewViewsEvict(log, registry, cfg.Session.MaxAge, viewsEvictInterval)
}

func provideTaskList(
	viewsEvictTask *views_evict.ViewsEvict,
	systemCollector *metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		viewsEvictTask,
		systemCollector,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
