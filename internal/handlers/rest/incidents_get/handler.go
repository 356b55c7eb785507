package incidents_get

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
	session, seed, err := h.sessions.Load(r)
	if err != nil {
		h.log.Warn("load web session", logger.NewField("error", err))
		respond.Err(w, h.log, entities.UnauthenticatedError())
		return
	}

	incidents, err := h.service.Incidents(session, seed)
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}

	res := make([]dto.Incident, 0, len(incidents))
	for _, i := range incidents {
		res = append(res, dto.FromIncident(i))
	}

	respond.JSON(w, h.log, http.StatusOK, res)
}
