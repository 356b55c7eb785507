//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=auth_logout_post_test
package auth_logout_post

import (
	"net/http"

	"agritrack/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Logout(sessionID string)
}

type SessionStore interface {
	Clear(w http.ResponseWriter, r *http.Request) (string, error)
}
