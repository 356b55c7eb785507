package auth_register_post

import (
	"encoding/json"
	"net/http"
	"strings"

	"agritrack/internal/dto"
	"agritrack/internal/entities"
	"agritrack/internal/handlers/rest/respond"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, h.log, http.StatusBadRequest, "Email and password are required")
		return
	}

	role, ok := entities.ParseRole(req.Role)
	if !ok {
		respond.Error(w, h.log, http.StatusBadRequest, "Unknown role")
		return
	}

	if err := h.service.Register(r.Context(), email, req.Password, role); err != nil {
		respond.Err(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
