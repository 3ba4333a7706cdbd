package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"comicapp/catalog/adapters/viewdto"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWatchHandler streams every view of a screen as a JSON text message until
// the screen is closed or the client goes away. At most slots streams run at
// once; a non-positive slots means no limit.
func NewWatchHandler(log *slog.Logger, host Host, slots int) http.HandlerFunc {
	var sem chan struct{}
	if slots > 0 {
		sem = make(chan struct{}, slots)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		session := r.PathValue("session")
		s, ok := lookup(w, log, host, session)
		if !ok {
			return
		}

		if sem != nil {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			default:
				log.Warn("watch rejected, no free slots", "session", session)
				writeError(w, http.StatusServiceUnavailable, "too many watchers")
				return
			}
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "session", session, "error", err)
			return
		}
		defer func() {
			if err := ws.Close(); err != nil {
				log.Debug("websocket close failed", "error", err)
			}
		}()
		log.Debug("watch started", "session", session)

		views, stop := s.Watch()
		defer stop()

		// incoming messages are ignored; a read error means the client left
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := ws.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-gone:
				log.Debug("watch client disconnected", "session", session)
				return
			case v, ok := <-views:
				if !ok {
					msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "screen closed")
					_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
					return
				}
				_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
				if err := ws.WriteJSON(viewdto.FromView(v)); err != nil {
					log.Warn("watch write failed", "session", session, "error", err)
					return
				}
			}
		}
	}
}
