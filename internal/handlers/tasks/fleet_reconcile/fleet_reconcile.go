package fleet_reconcile

import (
	"context"
	"time"
)

type Tracker interface {
	Reconcile(ctx context.Context) error
}

type FleetReconcile struct {
	tracker  Tracker
	interval time.Duration
}

func NewFleetReconcile(tracker Tracker, interval time.Duration) *FleetReconcile {
	return &FleetReconcile{
		tracker:  tracker,
		interval: interval,
	}
}

func (f *FleetReconcile) TTL() time.Duration {
	return f.interval
}

func (f *FleetReconcile) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, f.interval)
	defer cancel()

	err := f.tracker.Reconcile(ctxWithTimeout)
	if err != nil && ctx.Err() == nil && ctxWithTimeout.Err() != nil {
		// опрос не уложился в интервал, следующий тик попробует снова
		return nil
	}
	return err
}

func (f *FleetReconcile) Info() string {
	return "fleet reconcile"
}
