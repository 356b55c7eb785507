//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=incident_test
package incident

import (
	"context"

	"agritrack/internal/entities"
	"agritrack/pkg/logger"
)

type Gateway interface {
	ReportIncident(ctx context.Context, report entities.IncidentReport) error
}

type Locator interface {
	Locate(ctx context.Context, carrierID string) (entities.Coordinates, error)
}

type Trip interface {
	Binding() (entities.PickupBinding, bool)
}

type fleetSource interface {
	ListActiveShipments(ctx context.Context) entities.FleetSnapshot
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
