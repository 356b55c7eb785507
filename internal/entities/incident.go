package entities

import "time"

type IncidentType string

const (
	IncidentPoliceCheckpoint IncidentType = "POLICE_CHECKPOINT"
	IncidentBreakdown        IncidentType = "BREAKDOWN"
	IncidentAccident         IncidentType = "ACCIDENT"
	IncidentTraffic          IncidentType = "TRAFFIC"
	IncidentBadRoad          IncidentType = "BAD_ROAD"
)

func (t IncidentType) String() string {
	return string(t)
}

type IncidentStatus string

const (
	IncidentPending   IncidentStatus = "PENDING"
	IncidentConfirmed IncidentStatus = "CONFIRMED"
)

type Incident struct {
	ID          string
	ShipmentID  string
	CarrierID   string
	Location    *Coordinates
	Type        IncidentType
	Description string
	Severity    int
	Status      IncidentStatus
	ReportedAt  time.Time
}

// IncidentReport - то, что уходит в удаленный сервис.
type IncidentReport struct {
	ShipmentID  string
	CarrierID   string
	Location    Coordinates
	Type        IncidentType
	Description string
	Severity    int
}
