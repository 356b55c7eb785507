//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=incidents_get_test
package incidents_get

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
	Incidents(session entities.Session, seed *entities.PickupBinding) ([]entities.Incident, error)
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
}
