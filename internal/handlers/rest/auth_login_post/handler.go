package auth_login_post

import (
	"encoding/json"
	"net/http"
	"strings"

	"agritrack/internal/dto"
	"agritrack/internal/handlers/rest/respond"
	"agritrack/internal/service/guard"
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
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, h.log, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.service.Login(r.Context(), email, req.Password)
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}

	started, err := h.sessions.Start(w, r, *session)
	if err != nil {
		h.log.Error("start web session", logger.NewField("error", err))
		respond.Error(w, h.log, http.StatusInternalServerError, "Internal error")
		return
	}

	h.log.Info("user logged in",
		logger.NewField("session_id", started.ID),
		logger.NewField("role", started.Role.String()),
	)

	respond.JSON(w, h.log, http.StatusOK, dto.LoginResponse{
		Role: started.Role.String(),
		Home: guard.Home(started.Role),
	})
}
