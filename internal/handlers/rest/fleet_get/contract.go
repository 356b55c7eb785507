//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fleet_get_test
package fleet_get

import (
	"net/http"

	"agritrack/internal/entities"
	"agritrack/internal/service/fleet"
	"agritrack/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Fleet(session entities.Session) (fleet.View, error)
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
}
