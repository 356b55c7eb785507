package fleet

import (
	"context"
	"sort"
	"sync"
	"time"

	"agritrack/internal/entities"
	"agritrack/internal/pkg/geo"
	"agritrack/pkg/logger"

	"github.com/AlekSi/pointer"
)

// TruckView - грузовик на карте. Без текущей позиции расстояние и ETA не считаются.
type TruckView struct {
	entities.FleetTruck
	DistanceMeters *float64
	ETA            *time.Time
}

// View - то, что видит дашборд после последнего удачного опроса.
type View struct {
	Trucks   []TruckView
	Bounds   *entities.Bounds
	Summary  entities.Summary
	Degraded bool
	PolledAt time.Time
}

// Tracker сверяет состав активного парка между опросами.
// Грузовик, пропавший из списка, считается прибывшим.
type Tracker struct {
	mu        sync.Mutex
	gateway   Gateway
	estimator Estimator
	log       handlerLogger
	notifiers []Notifier
	now       func() time.Time

	previous map[string]entities.FleetTruck
	trucks   []TruckView
	bounds   *entities.Bounds
	summary  entities.Summary
	degraded bool
	polledAt time.Time
}

func New(gateway Gateway, estimator Estimator, log handlerLogger, notifiers ...Notifier) *Tracker {
	return &Tracker{
		gateway:   gateway,
		estimator: estimator,
		log:       log,
		notifiers: notifiers,
		now:       time.Now,
		previous:  make(map[string]entities.FleetTruck),
	}
}

// Reconcile - один опрос парка.
// Неудачный опрос не меняет состояние и не порождает событий.
func (t *Tracker) Reconcile(ctx context.Context) error {
	snapshot := t.gateway.ListActiveShipments(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	if snapshot.Degraded {
		PollFailuresTotal.WithLabelValues("fleet").Inc()
		t.log.Warn("fleet poll failed, keeping previous state")

		t.mu.Lock()
		t.degraded = true
		t.mu.Unlock()
		return nil
	}

	now := t.now()
	current := make(map[string]entities.FleetTruck, len(snapshot.Trucks))
	for _, truck := range snapshot.Trucks {
		current[truck.CarrierID] = truck
	}

	t.mu.Lock()
	events := make([]entities.ArrivalEvent, 0)
	for carrierID, last := range t.previous {
		if _, ok := current[carrierID]; ok {
			continue
		}
		events = append(events, entities.ArrivalEvent{
			CarrierID:  carrierID,
			ShipmentID: last.ShipmentID,
			LastKnown:  last.Current,
			DetectedAt: now,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CarrierID < events[j].CarrierID })

	t.previous = current
	t.trucks = t.views(snapshot.Trucks, now)
	t.bounds = boundsOf(snapshot.Trucks)
	t.degraded = false
	t.polledAt = now
	t.mu.Unlock()

	for _, event := range events {
		t.emit(ctx, event)
	}
	return nil
}

// RefreshSummary хранит последнюю удачную сводку.
func (t *Tracker) RefreshSummary(ctx context.Context) error {
	summary := t.gateway.FetchSummary(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	if summary.Degraded {
		PollFailuresTotal.WithLabelValues("summary").Inc()
		t.log.Warn("summary poll failed, keeping previous summary")
		return nil
	}

	t.mu.Lock()
	t.summary = summary
	t.mu.Unlock()
	return nil
}

func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := View{
		Trucks:   make([]TruckView, len(t.trucks)),
		Summary:  t.summary,
		Degraded: t.degraded,
		PolledAt: t.polledAt,
	}
	copy(v.Trucks, t.trucks)
	if t.bounds != nil {
		b := *t.bounds
		v.Bounds = &b
	}
	return v
}

func (t *Tracker) Summary() entities.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

func (t *Tracker) emit(ctx context.Context, event entities.ArrivalEvent) {
	ArrivalsTotal.Inc()
	t.log.Info("truck arrived",
		logger.NewField("carrier_id", event.CarrierID),
		logger.NewField("shipment_id", event.ShipmentID),
	)

	for _, n := range t.notifiers {
		if err := n.NotifyArrival(ctx, event); err != nil {
			t.log.Warn("arrival notification failed",
				logger.NewField("carrier_id", event.CarrierID),
				logger.NewField("error", err),
			)
		}
	}
}

func (t *Tracker) views(trucks []entities.FleetTruck, now time.Time) []TruckView {
	out := make([]TruckView, 0, len(trucks))
	for _, truck := range trucks {
		view := TruckView{FleetTruck: truck}
		if truck.Current != nil {
			distance := geo.Distance(*truck.Current, truck.Destination)
			view.DistanceMeters = pointer.To(distance)
			view.ETA = pointer.To(t.estimator.EstimateArrival(distance, truck.Speed, now))
		}
		out = append(out, view)
	}
	return out
}

func boundsOf(trucks []entities.FleetTruck) *entities.Bounds {
	points := make([]entities.Coordinates, 0, len(trucks)*2)
	for _, truck := range trucks {
		if truck.Current != nil {
			points = append(points, *truck.Current)
		}
		points = append(points, truck.Destination)
	}

	b, ok := geo.BoundsOf(points)
	if !ok {
		return nil
	}
	return &b
}
