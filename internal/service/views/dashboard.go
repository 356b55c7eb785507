package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agritrack/internal/entities"
	"agritrack/internal/handlers/tasks/fleet_reconcile"
	"agritrack/internal/handlers/tasks/summary_refresh"
	"agritrack/internal/pkg/config"
	"agritrack/internal/service/fleet"
	"agritrack/pkg/background"
	"agritrack/pkg/logger"
)

// DashboardView - карта парка и сводка одного оператора депо.
// Оба опроса живут до Close.
type DashboardView struct {
	Fleet *fleet.Tracker

	broadcaster *fleet.Broadcaster
	worker      *background.Worker

	mu   sync.Mutex
	seen time.Time
}

func newDashboardView(
	log logger.Logger,
	gateway Gateway,
	estimator fleet.Estimator,
	polling config.Polling,
	notifiers []fleet.Notifier,
) (*DashboardView, error) {
	broadcaster := fleet.NewBroadcaster()
	all := append([]fleet.Notifier{broadcaster}, notifiers...)
	tracker := fleet.New(gateway, estimator, log, all...)

	worker, err := background.New(context.Background(), log, []background.Task{
		fleet_reconcile.NewFleetReconcile(tracker, polling.FleetInterval),
		summary_refresh.NewSummaryRefresh(tracker, polling.SummaryInterval),
	})
	if err != nil {
		broadcaster.Close()
		return nil, fmt.Errorf("start dashboard polling: %w", err)
	}

	return &DashboardView{
		Fleet:       tracker,
		broadcaster: broadcaster,
		worker:      worker,
		seen:        time.Now(),
	}, nil
}

// Subscribe подписывает на события прибытия этого дашборда.
func (v *DashboardView) Subscribe() (<-chan entities.ArrivalEvent, func()) {
	return v.broadcaster.Subscribe()
}

// Close останавливает оба опроса и закрывает подписки.
func (v *DashboardView) Close() {
	v.worker.Stop()
	v.broadcaster.Close()
}

func (v *DashboardView) touch(now time.Time) {
	v.mu.Lock()
	v.seen = now
	v.mu.Unlock()
}

func (v *DashboardView) lastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seen
}
