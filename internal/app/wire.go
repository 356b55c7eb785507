//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"

	"agritrack/internal/pkg/config"
	"agritrack/internal/pkg/factory/arrival_estimate"
	"agritrack/internal/pkg/metrics"
	"agritrack/internal/service/console"
	"agritrack/internal/service/fleet"
	"agritrack/internal/service/guard"
	"agritrack/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/wire"
)

// InitializeApplication собирает консоль. producer может быть nil, тогда Kafka не используется.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	client *http.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideShipmentGateway,
		provideViewGateways,
		provideConsoleGateways,
		provideNotifiers,
		arrival_estimate.New,
		provideViewsRegistry,
		provideSessions,
		guard.New,
		console.New,

		provideViewsEvictTask,
		metrics.NewSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(fleet.Estimator), new(*arrival_estimate.ArrivalTimeFactory)),
	)
	return &Application{}, nil
}
