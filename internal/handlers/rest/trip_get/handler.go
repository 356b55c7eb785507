package trip_get

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

	snap, err := h.service.Trip(session, seed)
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}

	if err := h.sessions.SaveBinding(w, r, snap.Binding); err != nil {
		h.log.Error("save trip binding", logger.NewField("error", err))
	}

	respond.JSON(w, h.log, http.StatusOK, dto.NewTrip(snap.State, snap.Binding, snap.Watching))
}
