package views

import (
	"errors"
	"sync"
	"time"

	"agritrack/internal/entities"
	"agritrack/internal/pkg/config"
	"agritrack/internal/service/fleet"
	"agritrack/internal/service/trip"
	"agritrack/pkg/logger"
)

var ErrRegistryClosed = errors.New("views registry closed")

// Registry хранит представления по id веб-сессии.
// Закрытие сессии останавливает все опросы, которыми она владеет.
type Registry struct {
	log       logger.Logger
	gateways  GatewayFunc
	estimator fleet.Estimator
	polling   config.Polling
	notifiers []fleet.Notifier
	now       func() time.Time

	mu         sync.Mutex
	drivers    map[string]*DriverView
	dashboards map[string]*DashboardView
	closed     bool
}

func NewRegistry(
	log logger.Logger,
	gateways GatewayFunc,
	estimator fleet.Estimator,
	polling config.Polling,
	notifiers ...fleet.Notifier,
) *Registry {
	return &Registry{
		log:        log,
		gateways:   gateways,
		estimator:  estimator,
		polling:    polling,
		notifiers:  notifiers,
		now:        time.Now,
		drivers:    make(map[string]*DriverView),
		dashboards: make(map[string]*DashboardView),
	}
}

// Driver возвращает представление водителя, создавая его при первом обращении.
// seed - привязка из cookie, читается только при создании.
func (r *Registry) Driver(session entities.Session, seed *entities.PickupBinding) (*DriverView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	if v, ok := r.drivers[session.ID]; ok {
		v.touch(r.now())
		return v, nil
	}

	log := r.log.With(
		logger.NewField("session_id", session.ID),
		logger.NewField("view", "driver"),
	)
	v := newDriverView(log, r.gateways(session), trip.NewMemoryStore(seed), r.polling.DeliveryInterval)
	v.touch(r.now())
	r.drivers[session.ID] = v
	return v, nil
}

// Dashboard возвращает представление депо. Первый вызов делает первый опрос синхронно.
func (r *Registry) Dashboard(session entities.Session) (*DashboardView, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	if v, ok := r.dashboards[session.ID]; ok {
		v.touch(r.now())
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	log := r.log.With(
		logger.NewField("session_id", session.ID),
		logger.NewField("view", "dashboard"),
	)
	created, err := newDashboardView(log, r.gateways(session), r.estimator, r.polling, r.notifiers)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		created.Close()
		return nil, ErrRegistryClosed
	}
	if existing, ok := r.dashboards[session.ID]; ok {
		created.Close()
		return existing, nil
	}
	created.touch(r.now())
	r.dashboards[session.ID] = created
	return created, nil
}

// LookupDashboard не создает представление.
func (r *Registry) LookupDashboard(sessionID string) (*DashboardView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.dashboards[sessionID]
	return v, ok
}

func (r *Registry) CloseDashboard(sessionID string) bool {
	r.mu.Lock()
	v, ok := r.dashboards[sessionID]
	delete(r.dashboards, sessionID)
	r.mu.Unlock()

	if ok {
		v.Close()
	}
	return ok
}

// CloseSession закрывает все представления сессии.
func (r *Registry) CloseSession(sessionID string) {
	r.mu.Lock()
	driver, hasDriver := r.drivers[sessionID]
	dashboard, hasDashboard := r.dashboards[sessionID]
	delete(r.drivers, sessionID)
	delete(r.dashboards, sessionID)
	r.mu.Unlock()

	if hasDriver {
		driver.Close()
	}
	if hasDashboard {
		dashboard.Close()
	}
}

// EvictIdle закрывает представления, к которым не обращались дольше maxIdle.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	deadline := r.now().Add(-maxIdle)

	r.mu.Lock()
	var (
		drivers    []*DriverView
		dashboards []*DashboardView
	)
	for id, v := range r.drivers {
		if v.lastSeen().Before(deadline) {
			drivers = append(drivers, v)
			delete(r.drivers, id)
		}
	}
	for id, v := range r.dashboards {
		if v.lastSeen().Before(deadline) {
			dashboards = append(dashboards, v)
			delete(r.dashboards, id)
		}
	}
	r.mu.Unlock()

	for _, v := range drivers {
		v.Close()
	}
	for _, v := range dashboards {
		v.Close()
	}
	return len(drivers) + len(dashboards)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drivers) + len(r.dashboards)
}

// Close закрывает все представления. Новые после этого не создаются.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	drivers := r.drivers
	dashboards := r.dashboards
	r.drivers = make(map[string]*DriverView)
	r.dashboards = make(map[string]*DashboardView)
	r.mu.Unlock()

	for _, v := range drivers {
		v.Close()
	}
	for _, v := range dashboards {
		v.Close()
	}
}
