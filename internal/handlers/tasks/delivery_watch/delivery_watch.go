package delivery_watch

import (
	"context"
	"errors"
	"time"

	"agritrack/internal/entities"
	"agritrack/internal/service/trip"
	"agritrack/pkg/background"
	"agritrack/pkg/logger"
)

type Trip interface {
	CheckDelivery(ctx context.Context) (string, entities.ShipmentStatus, error)
	State() entities.TripState
}

type HandlerFactory interface {
	GetHandler(status entities.ShipmentStatus) (trip.ExecuteFn, error)
}

// DeliveryWatch опрашивает статус отправки, пока водитель ждет подтверждения депо.
// Снимается с расписания, как только рейс перестает ждать подтверждения.
type DeliveryWatch struct {
	log      logger.Logger
	trip     Trip
	factory  HandlerFactory
	interval time.Duration
}

func NewDeliveryWatch(log logger.Logger, trip Trip, factory HandlerFactory, interval time.Duration) *DeliveryWatch {
	return &DeliveryWatch{
		log:      log,
		trip:     trip,
		factory:  factory,
		interval: interval,
	}
}

func (d *DeliveryWatch) TTL() time.Duration {
	return d.interval
}

func (d *DeliveryWatch) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	shipmentID, status, err := d.trip.CheckDelivery(ctxWithTimeout)
	switch {
	case errors.Is(err, trip.ErrNotAwaitingDelivery):
		return background.ErrTaskDone
	case err != nil && ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		d.log.With(
			logger.NewField("error", err),
		).Warn("delivery status poll failed")
		return nil
	}

	handler, err := d.factory.GetHandler(status)
	if err != nil {
		d.log.With(
			logger.NewField("shipment_id", shipmentID),
			logger.NewField("error", err),
		).Warn("skip shipment status")
		return nil
	}

	if err := handler(ctxWithTimeout, shipmentID); err != nil {
		return err
	}

	if d.trip.State() != entities.TripAwaitingDeliveryConfirmation {
		d.log.With(
			logger.NewField("shipment_id", shipmentID),
		).Info("delivery confirmed by depot")
		return background.ErrTaskDone
	}
	return nil
}

func (d *DeliveryWatch) Info() string {
	return "delivery watch"
}
