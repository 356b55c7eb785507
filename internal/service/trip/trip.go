package trip

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agritrack/internal/entities"
	"agritrack/internal/service/handoff"
	"agritrack/pkg/logger"
)

const pickupCodeLength = 9

var transitions = map[entities.TripState][]entities.TripState{
	entities.TripAwaitingAssignment:           {entities.TripEnRoute},
	entities.TripEnRoute:                      {entities.TripAwaitingDeliveryConfirmation},
	entities.TripAwaitingDeliveryConfirmation: {entities.TripEnRoute, entities.TripDelivered},
	entities.TripDelivered:                    {entities.TripAwaitingAssignment},
}

func CanTransition(from, to entities.TripState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Lifecycle - машина состояний рейса одного водителя.
// Состояние EN_ROUTE и дальше существует только вместе с валидной привязкой.
type Lifecycle struct {
	mu       sync.Mutex
	gateway  Gateway
	store    BindingStore
	log      handlerLogger
	state    entities.TripState
	binding  *entities.PickupBinding
	inFlight bool
}

// New синхронно восстанавливает состояние из хранилища:
// есть привязка - рейс в пути, нет - ждем назначения.
func New(gateway Gateway, store BindingStore, log handlerLogger) *Lifecycle {
	l := &Lifecycle{
		gateway: gateway,
		store:   store,
		log:     log,
		state:   entities.TripAwaitingAssignment,
	}

	if b, ok := store.Load(); ok && b.Valid() {
		l.binding = &b
		l.state = entities.TripEnRoute
	}
	return l
}

func (l *Lifecycle) State() entities.TripState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lifecycle) Binding() (entities.PickupBinding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.binding == nil {
		return entities.PickupBinding{}, false
	}
	return *l.binding, true
}

// Redeem гасит код погрузки. При неудаче состояние не меняется.
func (l *Lifecycle) Redeem(ctx context.Context, code string) (*entities.PickupBinding, error) {
	code = strings.TrimSpace(code)
	if len(code) < pickupCodeLength {
		return nil, entities.InvalidCodeError("Pickup code must be 9 characters")
	}

	if err := l.begin(entities.TripAwaitingAssignment, entities.TripEnRoute); err != nil {
		return nil, err
	}

	binding, err := l.gateway.RedeemPickupCode(ctx, code)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false

	if err != nil {
		l.log.Warn("pickup code redemption failed", logger.NewField("error", err))
		return nil, fmt.Errorf("redeem pickup code: %w", err)
	}

	if err := l.store.Save(*binding); err != nil {
		return nil, fmt.Errorf("save binding: %w", err)
	}
	l.binding = binding
	l.setState(entities.TripEnRoute)

	result := *binding
	return &result, nil
}

// ConfirmArrival проверяет близость к точке назначения.
// TooFarError возвращается без изменений.
func (l *Lifecycle) ConfirmArrival(ctx context.Context, coords entities.Coordinates) error {
	if err := l.begin(entities.TripEnRoute, entities.TripAwaitingDeliveryConfirmation); err != nil {
		return err
	}

	l.mu.Lock()
	shipmentID := l.binding.ShipmentID
	l.mu.Unlock()

	err := l.gateway.VerifyArrival(ctx, shipmentID, coords)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false

	if err != nil {
		l.log.Warn("arrival verification failed",
			logger.NewField("shipment_id", shipmentID),
			logger.NewField("error", err),
		)
		return fmt.Errorf("verify arrival: %w", err)
	}

	l.setState(entities.TripAwaitingDeliveryConfirmation)
	return nil
}

func (l *Lifecycle) CancelArrival() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != entities.TripAwaitingDeliveryConfirmation {
		return fmt.Errorf("%w: cancel arrival from %s", ErrInvalidTransition, l.state)
	}
	l.setState(entities.TripEnRoute)
	return nil
}

// MarkDelivered завершает рейс ровно один раз.
// Повторный или устаревший вызов ничего не меняет и возвращает false.
func (l *Lifecycle) MarkDelivered(shipmentID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != entities.TripAwaitingDeliveryConfirmation || l.binding == nil || l.binding.ShipmentID != shipmentID {
		return false
	}

	if err := l.store.Clear(); err != nil {
		l.log.Error("clear binding", logger.NewField("error", err))
	}
	l.binding = nil
	l.setState(entities.TripDelivered)
	return true
}

// Reset начинает новый рейс после доставки.
func (l *Lifecycle) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != entities.TripDelivered {
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, l.state)
	}
	l.setState(entities.TripAwaitingAssignment)
	return nil
}

// CheckDelivery - одно наблюдение статуса отправки.
// Если контекст отменен, пока шел запрос, результат отбрасывается.
func (l *Lifecycle) CheckDelivery(ctx context.Context) (string, entities.ShipmentStatus, error) {
	l.mu.Lock()
	if l.state != entities.TripAwaitingDeliveryConfirmation || l.binding == nil {
		l.mu.Unlock()
		return "", "", ErrNotAwaitingDelivery
	}
	shipmentID := l.binding.ShipmentID
	l.mu.Unlock()

	status, err := l.gateway.ShipmentStatus(ctx, shipmentID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", "", ctxErr
	}
	if err != nil {
		return "", "", fmt.Errorf("shipment status %s: %w", shipmentID, err)
	}
	return shipmentID, status, nil
}

// HandoffToken - токен, который водитель показывает оператору депо.
func (l *Lifecycle) HandoffToken() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != entities.TripAwaitingDeliveryConfirmation || l.binding == nil {
		return "", ErrNotAwaitingDelivery
	}
	return handoff.EncodeToken(l.binding.ShipmentID), nil
}

func (l *Lifecycle) begin(from, to entities.TripState) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != from || !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, l.state)
	}
	if l.inFlight {
		return ErrOperationInProgress
	}
	if from != entities.TripAwaitingAssignment && l.binding == nil {
		return fmt.Errorf("%w: no active binding", ErrInvalidTransition)
	}
	l.inFlight = true
	return nil
}

func (l *Lifecycle) setState(next entities.TripState) {
	l.log.Info("trip state changed",
		logger.NewField("from", l.state.String()),
		logger.NewField("to", next.String()),
	)
	l.state = next
}
