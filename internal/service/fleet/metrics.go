package fleet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PollFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_poll_failures_total",
			Help: "Total number of failed dashboard polls",
		},
		[]string{"poll"},
	)

	ArrivalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleet_arrivals_total",
			Help: "Total number of detected truck arrivals",
		},
	)
)
