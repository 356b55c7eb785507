package arrival_estimate

import (
	"time"
)

// Скорость, с которой считаем ETA, если телеметрия ее не прислала.
const defaultSpeedKmh = 40.0

type ArrivalTimeFactory struct{}

func New() *ArrivalTimeFactory {
	return &ArrivalTimeFactory{}
}

func (a *ArrivalTimeFactory) EstimateArrival(distanceMeters, speedKmh float64, baseTime time.Time) time.Time {
	if distanceMeters <= 0 {
		return baseTime
	}

	speed := speedKmh
	if speed <= 0 {
		speed = defaultSpeedKmh
	}

	hours := distanceMeters / 1000 / speed
	return baseTime.Add(time.Duration(hours * float64(time.Hour))).Truncate(time.Second)
}
