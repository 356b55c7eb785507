package arrivals_stream

import (
	"net/http"
	"time"

	"agritrack/internal/dto"
	"agritrack/internal/entities"
	"agritrack/internal/handlers/rest/respond"
	"agritrack/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

type Handler struct {
	log      handlerLogger
	service  Service
	sessions SessionStore
	upgrader websocket.Upgrader
}

func New(log handlerLogger, service Service, sessions SessionStore) *Handler {
	handlerLog := log.With(logger.NewField("handler", "arrivals_stream"))

	return &Handler{
		log:      handlerLog,
		service:  service,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP пересылает события прибытия дашборда сессии в websocket.
// Поток завершается, когда клиент уходит или представление дашборда закрыто.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, _, err := h.sessions.Load(r)
	if err != nil {
		h.log.Warn("load web session", logger.NewField("error", err))
		respond.Err(w, h.log, entities.UnauthenticatedError())
		return
	}

	events, unsubscribe, err := h.service.Arrivals(session)
	if err != nil {
		respond.Err(w, h.log, err)
		return
	}
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", logger.NewField("error", err))
		return
	}
	defer conn.Close()

	h.log.Info("arrival stream opened", logger.NewField("session_id", session.ID))

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			h.log.Info("arrival stream closed by client", logger.NewField("session_id", session.ID))
			return

		case event, ok := <-events:
			if !ok {
				_ = conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "dashboard closed"),
					time.Now().Add(writeWait),
				)
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(dto.FromArrival(event)); err != nil {
				h.log.Warn("write arrival event",
					logger.NewField("session_id", session.ID),
					logger.NewField("error", err),
				)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
