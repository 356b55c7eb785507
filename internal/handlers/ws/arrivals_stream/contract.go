//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=arrivals_stream_test
package arrivals_stream

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
	Arrivals(session entities.Session) (<-chan entities.ArrivalEvent, func(), error)
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
}
