package incident

import (
	"context"
	"fmt"

	"agritrack/internal/entities"
)

// FleetLocator берет последнюю известную позицию грузовика из активного парка.
// Грузовик без позиции не дает координат.
type FleetLocator struct {
	fleet fleetSource
}

func NewFleetLocator(fleet fleetSource) *FleetLocator {
	return &FleetLocator{fleet: fleet}
}

func (l *FleetLocator) Locate(ctx context.Context, carrierID string) (entities.Coordinates, error) {
	snapshot := l.fleet.ListActiveShipments(ctx)
	if snapshot.Degraded {
		return entities.Coordinates{}, ErrFleetUnavailable
	}

	for _, truck := range snapshot.Trucks {
		if truck.CarrierID != carrierID {
			continue
		}
		if truck.Current == nil {
			return entities.Coordinates{}, fmt.Errorf("%w: %s", ErrPositionUnknown, carrierID)
		}
		return *truck.Current, nil
	}
	return entities.Coordinates{}, fmt.Errorf("%w: %s", ErrCarrierNotListed, carrierID)
}
