package auth_logout_post

import (
	"net/http"

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

// ServeHTTP закрывает представления сессии до очистки cookie.
// Битая cookie все равно стирается, выход не может не удаться.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessions.Clear(w, r)
	if err != nil {
		h.log.Warn("clear web session", logger.NewField("error", err))
	}

	if sessionID != "" {
		h.service.Logout(sessionID)
		h.log.Info("user logged out", logger.NewField("session_id", sessionID))
	}

	w.WriteHeader(http.StatusNoContent)
}
