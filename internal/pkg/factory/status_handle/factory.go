package status_handle

import (
	"context"
	"fmt"

	"agritrack/internal/entities"
	"agritrack/internal/service/trip"
)

type deliveryMarker interface {
	MarkDelivered(shipmentID string) bool
}

type StatusHandlerFactory struct {
	trip deliveryMarker
}

func NewStatusHandlerFactory(trip deliveryMarker) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		trip: trip,
	}
}

func (f *StatusHandlerFactory) GetHandler(status entities.ShipmentStatus) (trip.ExecuteFn, error) {
	switch status {
	case entities.ShipmentDelivered:
		return f.deliveredHandler, nil
	case entities.ShipmentCreated, entities.ShipmentInTransit, entities.ShipmentCancelled:
		return noopHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", trip.ErrUndefinedStatus, status)
	}
}

func (f *StatusHandlerFactory) deliveredHandler(_ context.Context, shipmentID string) error {
	f.trip.MarkDelivered(shipmentID)
	return nil
}

func noopHandler(context.Context, string) error {
	return nil
}
