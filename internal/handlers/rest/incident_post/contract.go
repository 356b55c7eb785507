//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=incident_post_test
package incident_post

import (
	"net/http"

	"agritrack/internal/entities"
	"agritrack/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ReportIncident(
		session entities.Session,
		seed *entities.PickupBinding,
		incidentType entities.IncidentType,
		description string,
		location *entities.Coordinates,
	) (string, error)
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
}
