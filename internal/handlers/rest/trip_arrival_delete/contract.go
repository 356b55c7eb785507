//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=trip_arrival_delete_test
package trip_arrival_delete

import (
	"net/http"

	"agritrack/internal/entities"
	"agritrack/internal/service/console"
	"agritrack/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CancelArrival(session entities.Session, seed *entities.PickupBinding) (console.TripSnapshot, error)
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
	SaveBinding(w http.ResponseWriter, r *http.Request, binding *entities.PickupBinding) error
}
