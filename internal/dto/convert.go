package dto

import (
	"agritrack/internal/entities"

	"github.com/AlekSi/pointer"
)

func FromCoordinates(c entities.Coordinates) Coordinates {
	return Coordinates{Lat: c.Lat, Lon: c.Lon}
}

func FromCoordinatesPtr(c *entities.Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	return pointer.To(FromCoordinates(*c))
}

func (c Coordinates) Entity() entities.Coordinates {
	return entities.Coordinates{Lat: c.Lat, Lon: c.Lon}
}

// EntityPtr допускает nil получателя.
func (c *Coordinates) EntityPtr() *entities.Coordinates {
	if c == nil {
		return nil
	}
	return pointer.To(c.Entity())
}

func FromBinding(b *entities.PickupBinding) *PickupBinding {
	if b == nil {
		return nil
	}
	return &PickupBinding{
		ShipmentID: b.ShipmentID,
		CarrierID:  b.CarrierID,
		Origin:     FromCoordinates(b.Origin),
	}
}

func FromIncident(i entities.Incident) Incident {
	return Incident{
		ID:          i.ID,
		ShipmentID:  i.ShipmentID,
		CarrierID:   i.CarrierID,
		Type:        i.Type.String(),
		Description: i.Description,
		Severity:    i.Severity,
		Status:      string(i.Status),
		ReportedAt:  i.ReportedAt,
		Location:    FromCoordinatesPtr(i.Location),
	}
}

func FromSummary(s entities.Summary) Summary {
	return Summary{
		ActiveCount:    s.ActiveCount,
		CompletedToday: s.CompletedToday,
		IncidentCount:  s.IncidentCount,
		AvgSpeed:       s.AvgSpeed,
		TimeRange:      s.TimeRange,
		Degraded:       s.Degraded,
	}
}

func FromArrival(e entities.ArrivalEvent) ArrivalEvent {
	return ArrivalEvent{
		CarrierID:  e.CarrierID,
		ShipmentID: e.ShipmentID,
		LastKnown:  FromCoordinatesPtr(e.LastKnown),
		DetectedAt: e.DetectedAt,
	}
}

func NewTrip(state entities.TripState, binding *entities.PickupBinding, watching bool) Trip {
	return Trip{
		State:    state.String(),
		Binding:  FromBinding(binding),
		Watching: watching,
	}
}
