package summary_refresh

import (
	"context"
	"time"
)

type Tracker interface {
	RefreshSummary(ctx context.Context) error
}

type SummaryRefresh struct {
	tracker  Tracker
	interval time.Duration
}

func NewSummaryRefresh(tracker Tracker, interval time.Duration) *SummaryRefresh {
	return &SummaryRefresh{
		tracker:  tracker,
		interval: interval,
	}
}

func (s *SummaryRefresh) TTL() time.Duration {
	return s.interval
}

func (s *SummaryRefresh) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	err := s.tracker.RefreshSummary(ctxWithTimeout)
	if err != nil && ctx.Err() == nil && ctxWithTimeout.Err() != nil {
		return nil
	}
	return err
}

func (s *SummaryRefresh) Info() string {
	return "summary refresh"
}
