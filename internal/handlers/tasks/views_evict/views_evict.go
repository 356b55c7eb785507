package views_evict

import (
	"context"
	"time"

	"agritrack/pkg/logger"
)

type Registry interface {
	EvictIdle(maxIdle time.Duration) int
}

// ViewsEvict закрывает представления сессий, к которым давно не обращались.
// Без него брошенная вкладка опрашивала бы удаленный сервис до рестарта.
type ViewsEvict struct {
	log      logger.Logger
	registry Registry
	maxIdle  time.Duration
	interval time.Duration
}

func NewViewsEvict(log logger.Logger, registry Registry, maxIdle, interval time.Duration) *ViewsEvict {
	return &ViewsEvict{
		log:      log,
		registry: registry,
		maxIdle:  maxIdle,
		interval: interval,
	}
}

func (v *ViewsEvict) TTL() time.Duration {
	return v.interval
}

func (v *ViewsEvict) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	evicted := v.registry.EvictIdle(v.maxIdle)
	if evicted > 0 {
		v.log.With(
			logger.NewField("evicted_views", evicted),
		).Info("views evict")
	}
	return nil
}

func (v *ViewsEvict) Info() string {
	return "views evict"
}
