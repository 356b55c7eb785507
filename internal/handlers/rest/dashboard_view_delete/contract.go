//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dashboard_view_delete_test
package dashboard_view_delete

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
	CloseDashboard(session entities.Session) bool
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
}
