// Package dto - тела запросов и ответов HTTP API консоли.
package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Role string `json:"role"`
	Home string `json:"home"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ShipmentCreateRequest struct {
	Origin      Coordinates `json:"origin"`
	Destination Coordinates `json:"destination"`
}

type ShipmentCreateResponse struct {
	ID         string `json:"id"`
	PickupCode string `json:"pickup_code"`
}

type PickupBinding struct {
	ShipmentID string      `json:"shipment_id"`
	CarrierID  string      `json:"carrier_id"`
	Origin     Coordinates `json:"origin"`
}

type Trip struct {
	State    string         `json:"state"`
	Binding  *PickupBinding `json:"binding,omitempty"`
	Watching bool           `json:"watching_delivery"`
}

type PickupRequest struct {
	Code string `json:"code"`
}

type ArrivalRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type HandoffResponse struct {
	Token string `json:"token"`
	Trip  Trip   `json:"trip"`
}

// IncidentCreateRequest - location приходит с устройства водителя и может отсутствовать.
type IncidentCreateRequest struct {
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Location    *Coordinates `json:"location,omitempty"`
}

type IncidentCreateResponse struct {
	ID string `json:"id"`
}

type Incident struct {
	ID          string       `json:"id"`
	ShipmentID  string       `json:"shipment_id"`
	CarrierID   string       `json:"carrier_id"`
	Location    *Coordinates `json:"location,omitempty"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Severity    int          `json:"severity"`
	Status      string       `json:"status"`
	ReportedAt  time.Time    `json:"reported_at"`
}

type Truck struct {
	ShipmentID     string       `json:"shipment_id"`
	CarrierID      string       `json:"carrier_id"`
	Current        *Coordinates `json:"current"`
	Destination    Coordinates  `json:"destination"`
	Speed          float64      `json:"speed"`
	Status         string       `json:"status"`
	DistanceMeters *float64     `json:"distance_meters"`
	ETA            *time.Time   `json:"eta"`
}

type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

type Fleet struct {
	Trucks   []Truck   `json:"trucks"`
	Bounds   *Bounds   `json:"bounds,omitempty"`
	Degraded bool      `json:"degraded"`
	PolledAt time.Time `json:"polled_at"`
}

type Summary struct {
	ActiveCount    int     `json:"active_count"`
	CompletedToday int     `json:"completed_today"`
	IncidentCount  int     `json:"incident_count"`
	AvgSpeed       float64 `json:"avg_speed"`
	TimeRange      string  `json:"time_range"`
	Degraded       bool    `json:"degraded"`
}

type DeliveryConfirmRequest struct {
	Token string `json:"token"`
}

type DeliveryConfirmResponse struct {
	ShipmentID string `json:"shipment_id"`
}

type ArrivalEvent struct {
	CarrierID  string       `json:"carrier_id"`
	ShipmentID string       `json:"shipment_id"`
	LastKnown  *Coordinates `json:"last_known"`
	DetectedAt time.Time    `json:"detected_at"`
}
