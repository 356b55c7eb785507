//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=trip_test
package trip

import (
	"context"

	"agritrack/internal/entities"
	"agritrack/pkg/logger"
)

type Gateway interface {
	RedeemPickupCode(ctx context.Context, code string) (*entities.PickupBinding, error)
	VerifyArrival(ctx context.Context, shipmentID string, coords entities.Coordinates) error
	ShipmentStatus(ctx context.Context, shipmentID string) (entities.ShipmentStatus, error)
}

// BindingStore - хранилище активной привязки водителя, переживающее перезагрузку страницы.
type BindingStore interface {
	Load() (entities.PickupBinding, bool)
	Save(binding entities.PickupBinding) error
	Clear() error
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// ExecuteFn - обработчик наблюдаемого статуса отправки.
type ExecuteFn func(ctx context.Context, shipmentID string) error
