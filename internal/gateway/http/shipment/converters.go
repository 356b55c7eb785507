package shipment

import (
	"agritrack/internal/entities"

	"github.com/AlekSi/pointer"
)

func toFleetSnapshot(resp []activeShipment) entities.FleetSnapshot {
	trucks := make([]entities.FleetTruck, 0, len(resp))
	for _, s := range resp {
		if s.TruckID == "" {
			continue
		}
		trucks = append(trucks, entities.FleetTruck{
			ShipmentID:  s.ID,
			CarrierID:   s.TruckID,
			PickupCode:  s.PickupCode,
			Current:     currentPosition(s),
			Destination: entities.Coordinates{Lat: s.DestLat, Lon: s.DestLon},
			Speed:       s.Speed,
			Status:      entities.ShipmentStatus(s.Status),
		})
	}
	return entities.FleetSnapshot{Trucks: trucks}
}

// currentPosition - позиция грузовика, nil пока удаленный сервис ее не знает.
func currentPosition(s activeShipment) *entities.Coordinates {
	if s.Lat == nil || s.Lon == nil {
		return nil
	}
	return pointer.To(entities.Coordinates{Lat: *s.Lat, Lon: *s.Lon})
}

func toSummary(resp summaryResponse) entities.Summary {
	if resp.Error {
		return entities.Summary{TimeRange: resp.TimeRange, Degraded: true}
	}
	return entities.Summary{
		ActiveCount:    resp.TotalActiveTrucks,
		CompletedToday: resp.TotalCompletedToday,
		IncidentCount:  resp.AlertsCount,
		AvgSpeed:       resp.AvgSpeed,
		TimeRange:      resp.TimeRange,
	}
}

func toPickupBinding(resp pickupResponse) *entities.PickupBinding {
	return &entities.PickupBinding{
		ShipmentID: resp.ShipmentID,
		CarrierID:  resp.TruckID,
		Origin:     entities.Coordinates{Lat: resp.OriginLat, Lon: resp.OriginLon},
	}
}

func toIncidentRequest(r entities.IncidentReport) incidentRequest {
	return incidentRequest{
		TruckID:      r.CarrierID,
		ShipmentID:   r.ShipmentID,
		Latitude:     r.Location.Lat,
		Longitude:    r.Location.Lon,
		IncidentType: r.Type.String(),
		Description:  r.Description,
		Severity:     r.Severity,
	}
}
