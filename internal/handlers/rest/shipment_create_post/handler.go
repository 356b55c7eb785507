package shipment_create_post

import (
	"encoding/json"
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

	var req dto.ShipmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticket, err := h.service.CreateShipment(r.Context(), session, req.Origin.Entity(), req.Destination.Entity())
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}

	h.log.Info("shipment created", logger.NewField("shipment_id", ticket.ID))

	respond.JSON(w, h.log, http.StatusCreated, dto.ShipmentCreateResponse{
		ID:         ticket.ID,
		PickupCode: ticket.PickupCode,
	})
}
