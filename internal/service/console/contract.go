package console

import (
	"context"

	"agritrack/internal/entities"
)

// Gateway - операции удаленного сервиса, которые не принадлежат ни одному представлению.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*entities.Session, error)
	Register(ctx context.Context, email, password string, role entities.Role) error
	CreateShipment(ctx context.Context, origin, destination entities.Coordinates) (*entities.ShipmentTicket, error)
	ConfirmArrival(ctx context.Context, shipmentID string) error
}

type GatewayFunc func(session entities.Session) Gateway
