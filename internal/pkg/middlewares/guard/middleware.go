package guard

import (
	"net/http"

	"agritrack/internal/service/guard"
	"agritrack/pkg/logger"
)

// Middleware решает судьбу каждого запроса заново, без кеша.
func Middleware(log handlerLogger, g Guard, credentials CredentialSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Decide(r.URL.Path, credentials.Credential(r))
			if decision.Action == guard.ActionAllow {
				next.ServeHTTP(w, r)
				return
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("target", decision.Target),
			).Info("guard redirect")

			http.Redirect(w, r, decision.Target, http.StatusSeeOther)
		})
	}
}
