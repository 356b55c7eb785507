//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_confirm_post_test
package delivery_confirm_post

import (
	"context"
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
	ConfirmDelivery(ctx context.Context, session entities.Session, token string) (string, error)
}

type SessionStore interface {
	Load(r *http.Request) (entities.Session, *entities.PickupBinding, error)
}
