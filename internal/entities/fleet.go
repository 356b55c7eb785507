package entities

import "time"

type FleetTruck struct {
	ShipmentID  string
	CarrierID   string
	PickupCode  string
	Current     *Coordinates // nil, пока грузовик не начал движение
	Destination Coordinates
	Speed       float64
	Status      ShipmentStatus
}

// FleetSnapshot - результат одного опроса, целиком заменяет предыдущий.
// Degraded означает, что опрос не удался и данных нет.
type FleetSnapshot struct {
	Trucks   []FleetTruck
	Degraded bool
}

type Summary struct {
	ActiveCount    int
	CompletedToday int
	IncidentCount  int
	AvgSpeed       float64
	TimeRange      string
	Degraded       bool
}

type ArrivalEvent struct {
	CarrierID  string
	ShipmentID string
	LastKnown  *Coordinates
	DetectedAt time.Time
}

// Bounds - прямоугольник карты, вмещающий весь текущий парк.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}
