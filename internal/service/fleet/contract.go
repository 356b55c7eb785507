//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fleet_test
package fleet

import (
	"context"
	"time"

	"agritrack/internal/entities"
	"agritrack/pkg/logger"
)

type Gateway interface {
	ListActiveShipments(ctx context.Context) entities.FleetSnapshot
	FetchSummary(ctx context.Context) entities.Summary
}

// Notifier получает каждое событие прибытия. Ошибка одного получателя не мешает остальным.
type Notifier interface {
	NotifyArrival(ctx context.Context, event entities.ArrivalEvent) error
}

type Estimator interface {
	EstimateArrival(distanceMeters, speedKmh float64, baseTime time.Time) time.Time
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
