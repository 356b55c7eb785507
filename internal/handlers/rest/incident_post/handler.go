package incident_post

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
	session, seed, err := h.sessions.Load(r)
	if err != nil {
		h.log.Warn("load web session", logger.NewField("error", err))
		respond.Err(w, h.log, entities.UnauthenticatedError())
		return
	}

	var req dto.IncidentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Запись появляется в списке сразу как PENDING, отправка идет в фоне.
	id, err := h.service.ReportIncident(
		session,
		seed,
		entities.IncidentType(req.Type),
		req.Description,
		req.Location.EntityPtr(),
	)
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusAccepted, dto.IncidentCreateResponse{ID: id})
}
