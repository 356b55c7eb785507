package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agritrack/internal/handlers/tasks/delivery_watch"
	"agritrack/internal/pkg/factory/status_handle"
	"agritrack/internal/service/incident"
	"agritrack/internal/service/trip"
	"agritrack/pkg/background"
	"agritrack/pkg/logger"
)

// DriverView - рейс и инциденты одного водителя плюс опрос доставки, пока он нужен.
type DriverView struct {
	Trip      *trip.Lifecycle
	Incidents *incident.Reporter

	log      logger.Logger
	interval time.Duration

	mu      sync.Mutex
	watcher *background.Worker
	seen    time.Time
}

func newDriverView(log logger.Logger, gateway Gateway, store trip.BindingStore, interval time.Duration) *DriverView {
	lifecycle := trip.New(gateway, store, log)

	return &DriverView{
		Trip:      lifecycle,
		Incidents: incident.New(gateway, incident.NewFleetLocator(gateway), lifecycle, log),
		log:       log,
		interval:  interval,
		seen:      time.Now(),
	}
}

// HandoffToken выдает токен для депо и запускает опрос статуса доставки.
func (v *DriverView) HandoffToken() (string, error) {
	token, err := v.Trip.HandoffToken()
	if err != nil {
		return "", err
	}

	if err := v.watchDelivery(); err != nil {
		return "", err
	}
	return token, nil
}

// CancelArrival останавливает опрос доставки и возвращает рейс в пути.
func (v *DriverView) CancelArrival() error {
	v.stopWatch()
	return v.Trip.CancelArrival()
}

func (v *DriverView) Watching() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.watcher != nil && v.watcher.Running()
}

func (v *DriverView) Close() {
	v.stopWatch()
	v.Incidents.Close()
}

func (v *DriverView) watchDelivery() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.watcher != nil && v.watcher.Running() {
		return nil
	}

	task := delivery_watch.NewDeliveryWatch(v.log, v.Trip, status_handle.NewStatusHandlerFactory(v.Trip), v.interval)
	worker, err := background.New(context.Background(), v.log, []background.Task{task})
	if err != nil {
		return fmt.Errorf("start delivery watch: %w", err)
	}
	v.watcher = worker
	return nil
}

func (v *DriverView) stopWatch() {
	v.mu.Lock()
	watcher := v.watcher
	v.watcher = nil
	v.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}
}

func (v *DriverView) touch(now time.Time) {
	v.mu.Lock()
	v.seen = now
	v.mu.Unlock()
}

func (v *DriverView) lastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seen
}
