package console

import (
	"context"
	"fmt"

	"agritrack/internal/entities"
	"agritrack/internal/service/fleet"
	"agritrack/internal/service/handoff"
	"agritrack/internal/service/views"
)

// TripSnapshot - состояние рейса после операции. Binding нужно сохранить в cookie.
type TripSnapshot struct {
	State    entities.TripState
	Binding  *entities.PickupBinding
	Watching bool
}

// Console связывает веб-сессию с ее представлениями и удаленным сервисом.
type Console struct {
	gateways GatewayFunc
	views    *views.Registry
}

func New(gateways GatewayFunc, registry *views.Registry) *Console {
	return &Console{
		gateways: gateways,
		views:    registry,
	}
}

func (c *Console) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	return c.gateways(entities.Session{}).Login(ctx, email, password)
}

func (c *Console) Register(ctx context.Context, email, password string, role entities.Role) error {
	return c.gateways(entities.Session{}).Register(ctx, email, password, role)
}

// Logout закрывает все представления сессии и их опросы.
func (c *Console) Logout(sessionID string) {
	c.views.CloseSession(sessionID)
}

func (c *Console) CreateShipment(ctx context.Context, session entities.Session, origin, destination entities.Coordinates) (*entities.ShipmentTicket, error) {
	if err := require(session, entities.RoleOriginator); err != nil {
		return nil, err
	}
	return c.gateways(session).CreateShipment(ctx, origin, destination)
}

func (c *Console) Trip(session entities.Session, seed *entities.PickupBinding) (TripSnapshot, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return TripSnapshot{}, err
	}
	return snapshot(v), nil
}

func (c *Console) RedeemPickupCode(ctx context.Context, session entities.Session, seed *entities.PickupBinding, code string) (TripSnapshot, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return TripSnapshot{}, err
	}

	if _, err := v.Trip.Redeem(ctx, code); err != nil {
		return snapshot(v), err
	}
	return snapshot(v), nil
}

func (c *Console) ConfirmArrival(ctx context.Context, session entities.Session, seed *entities.PickupBinding, coords entities.Coordinates) (TripSnapshot, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return TripSnapshot{}, err
	}

	if err := v.Trip.ConfirmArrival(ctx, coords); err != nil {
		return snapshot(v), err
	}
	return snapshot(v), nil
}

func (c *Console) CancelArrival(session entities.Session, seed *entities.PickupBinding) (TripSnapshot, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return TripSnapshot{}, err
	}

	if err := v.CancelArrival(); err != nil {
		return snapshot(v), err
	}
	return snapshot(v), nil
}

func (c *Console) HandoffToken(session entities.Session, seed *entities.PickupBinding) (string, TripSnapshot, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return "", TripSnapshot{}, err
	}

	token, err := v.HandoffToken()
	return token, snapshot(v), err
}

func (c *Console) ResetTrip(session entities.Session, seed *entities.PickupBinding) (TripSnapshot, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return TripSnapshot{}, err
	}

	if err := v.Trip.Reset(); err != nil {
		return snapshot(v), err
	}
	return snapshot(v), nil
}

// ReportIncident возвращает id записи сразу, итог отправки приходит в фоне.
func (c *Console) ReportIncident(
	session entities.Session,
	seed *entities.PickupBinding,
	incidentType entities.IncidentType,
	description string,
	location *entities.Coordinates,
) (string, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return "", err
	}

	id, _, err := v.Incidents.Report(incidentType, description, location)
	return id, err
}

func (c *Console) Incidents(session entities.Session, seed *entities.PickupBinding) ([]entities.Incident, error) {
	v, err := c.driver(session, seed)
	if err != nil {
		return nil, err
	}
	return v.Incidents.List(), nil
}

func (c *Console) Fleet(session entities.Session) (fleet.View, error) {
	v, err := c.dashboard(session)
	if err != nil {
		return fleet.View{}, err
	}
	return v.Fleet.View(), nil
}

func (c *Console) Summary(session entities.Session) (entities.Summary, error) {
	v, err := c.dashboard(session)
	if err != nil {
		return entities.Summary{}, err
	}
	return v.Fleet.Summary(), nil
}

// Arrivals подписывает на события прибытия дашборда сессии.
func (c *Console) Arrivals(session entities.Session) (<-chan entities.ArrivalEvent, func(), error) {
	v, err := c.dashboard(session)
	if err != nil {
		return nil, nil, err
	}

	events, unsubscribe := v.Subscribe()
	return events, unsubscribe, nil
}

func (c *Console) CloseDashboard(session entities.Session) bool {
	return c.views.CloseDashboard(session.ID)
}

// ConfirmDelivery - сторона депо: погашает токен водителя.
func (c *Console) ConfirmDelivery(ctx context.Context, session entities.Session, token string) (string, error) {
	if err := require(session, entities.RoleDepotOperator); err != nil {
		return "", err
	}
	return handoff.New(c.gateways(session)).Confirm(ctx, token)
}

func (c *Console) driver(session entities.Session, seed *entities.PickupBinding) (*views.DriverView, error) {
	if err := require(session, entities.RoleDriver); err != nil {
		return nil, err
	}
	return c.views.Driver(session, seed)
}

func (c *Console) dashboard(session entities.Session) (*views.DashboardView, error) {
	if err := require(session, entities.RoleDepotOperator); err != nil {
		return nil, err
	}
	return c.views.Dashboard(session)
}

func require(session entities.Session, role entities.Role) error {
	if !session.Authenticated() {
		return entities.UnauthenticatedError()
	}
	if session.Role != role {
		return fmt.Errorf("%w: %s", ErrRoleMismatch, session.Role)
	}
	return nil
}

func snapshot(v *views.DriverView) TripSnapshot {
	s := TripSnapshot{
		State:    v.Trip.State(),
		Watching: v.Watching(),
	}
	if b, ok := v.Trip.Binding(); ok {
		s.Binding = &b
	}
	return s
}
