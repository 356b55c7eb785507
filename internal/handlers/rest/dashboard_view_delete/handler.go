package dashboard_view_delete

import (
	"net/http"

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

	if h.service.CloseDashboard(session) {
		h.log.Info("dashboard view closed", logger.NewField("session_id", session.ID))
	}

	w.WriteHeader(http.StatusNoContent)
}
