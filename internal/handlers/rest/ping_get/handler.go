package ping_get

import (
	"net/http"

	"agritrack/internal/dto"
	"agritrack/internal/handlers/rest/respond"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log: handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	respond.JSON(w, h.log, http.StatusOK, dto.PingResponse{Message: &message})
}
