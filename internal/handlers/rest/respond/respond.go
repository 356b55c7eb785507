// Package respond - общие для REST-хендлеров запись JSON и отображение ошибок в HTTP-коды.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"agritrack/internal/dto"
	"agritrack/internal/entities"
	"agritrack/internal/service/console"
	"agritrack/internal/service/handoff"
	"agritrack/internal/service/incident"
	"agritrack/internal/service/trip"
	"agritrack/internal/service/views"
	"agritrack/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

func JSON(w http.ResponseWriter, log errorLogger, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

func Error(w http.ResponseWriter, log errorLogger, code int, message string) {
	JSON(w, log, code, dto.ErrorResponse{Error: message})
}

// Err отвечает кодом и сообщением, соответствующими ошибке.
func Err(w http.ResponseWriter, log errorLogger, err error) {
	code, message := Status(err)
	Error(w, log, code, message)
}

func Status(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest, entities.UserMessage(err, "Invalid request")
	case errors.Is(err, entities.ErrInvalidCode):
		return http.StatusUnprocessableEntity, entities.UserMessage(err, "Invalid pickup code")
	case errors.Is(err, entities.ErrUnauthenticated):
		return http.StatusUnauthorized, entities.UserMessage(err, "Please log in again")
	case errors.Is(err, console.ErrRoleMismatch):
		return http.StatusForbidden, "Not allowed for your role"
	case errors.Is(err, entities.ErrTooFar):
		return http.StatusConflict, entities.UserMessage(err, "Too far from destination")
	case errors.Is(err, entities.ErrLocationUnavailable):
		return http.StatusUnprocessableEntity, entities.UserMessage(err, "Location unavailable")
	case errors.Is(err, entities.ErrRemote):
		return http.StatusBadGateway, entities.UserMessage(err, "Remote service unavailable")
	case errors.Is(err, trip.ErrOperationInProgress):
		return http.StatusConflict, "Operation already in progress"
	case errors.Is(err, trip.ErrInvalidTransition), errors.Is(err, trip.ErrNotAwaitingDelivery):
		return http.StatusConflict, "Not allowed in the current trip state"
	case errors.Is(err, incident.ErrNoActiveTrip):
		return http.StatusConflict, "No active trip"
	case errors.Is(err, handoff.ErrMalformedToken):
		return http.StatusBadRequest, "Unrecognized handoff token"
	case errors.Is(err, views.ErrRegistryClosed), errors.Is(err, incident.ErrReporterClosed):
		return http.StatusServiceUnavailable, "Shutting down"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
