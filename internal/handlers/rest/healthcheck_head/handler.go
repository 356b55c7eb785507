package healthcheck_head

import (
	"net/http"
	"strconv"
	"sync/atomic"
)

type viewCounter interface {
	Len() int
}

// Handler отвечает 503 с начала остановки, чтобы балансировщик снял трафик до закрытия сервера.
// X-Active-Views - число живых представлений, каждое держит свои опросы.
type Handler struct {
	isShuttingDown *atomic.Bool
	views          viewCounter
}

func New(isShuttingDown *atomic.Bool, views viewCounter) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		views:          views,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("X-Active-Views", strconv.Itoa(h.views.Len()))
	w.WriteHeader(http.StatusNoContent)
}
