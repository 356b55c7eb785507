package fleet_get

import (
	"net/http"

	"agritrack/internal/dto"
	"agritrack/internal/entities"
	"agritrack/internal/handlers/rest/respond"
	"agritrack/pkg/logger"
)

type Handler struct {
	log      handlerLogger
	service  Service
	sessions SessionStore
}

func New(log handlerLogger, service Service, sessions SessionStore) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:      handlerLog,
		service:  service,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, _, err := h.sessions.Load(r)
	if err != nil {
		h.log.Warn("load web session", logger.NewField("error", err))
		respond.Err(w, h.log, entities.UnauthenticatedError())
		return
	}

	view, err := h.service.Fleet(session)
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}

	res := dto.Fleet{
		Trucks:   make([]dto.Truck, 0, len(view.Trucks)),
		Degraded: view.Degraded,
		PolledAt: view.PolledAt,
	}
	for _, t := range view.Trucks {
		res.Trucks = append(res.Trucks, dto.Truck{
			ShipmentID:     t.ShipmentID,
			CarrierID:      t.CarrierID,
			Current:        dto.FromCoordinatesPtr(t.Current),
			Destination:    dto.FromCoordinates(t.Destination),
			Speed:          t.Speed,
			Status:         t.Status.String(),
			DistanceMeters: t.DistanceMeters,
			ETA:            t.ETA,
		})
	}
	if view.Bounds != nil {
		res.Bounds = &dto.Bounds{
			South: view.Bounds.South,
			West:  view.Bounds.West,
			North: view.Bounds.North,
			East:  view.Bounds.East,
		}
	}

	respond.JSON(w, h.log, http.StatusOK, res)
}
