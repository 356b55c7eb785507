//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=guard_test
package guard

import (
	"net/http"

	"agritrack/internal/service/guard"
	"agritrack/pkg/logger"
)

type Guard interface {
	Decide(path, credential string) guard.Decision
}

type CredentialSource interface {
	Credential(r *http.Request) string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
