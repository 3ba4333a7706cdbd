package rest

import (
	"log/slog"
	"net/http"

	"comicapp/catalog/adapters/rest/middleware"
)

// Limits bounds the API. A nil Rate or a non-positive Watch disables
// that limit.
type Limits struct {
	Rate  *middleware.RateLimiter
	Watch int
}

// NewMux registers the screen API. Opening and retrying screens hit the
// comics source, so both go through the rate limiter.
func NewMux(log *slog.Logger, host Host, limits Limits) *http.ServeMux {
	limited := func(h http.Handler) http.Handler {
		if limits.Rate == nil {
			return h
		}
		return limits.Rate.Wrap(h)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/ping", NewPingHandler())
	mux.Handle("POST /api/screens", limited(NewOpenScreenHandler(log, host)))
	mux.Handle("GET /api/screens/{session}", NewScreenHandler(log, host))
	mux.Handle("POST /api/screens/{session}/retry", limited(NewRetryHandler(log, host)))
	mux.Handle("DELETE /api/screens/{session}", NewCloseScreenHandler(log, host))
	mux.Handle("GET /api/screens/{session}/watch", NewWatchHandler(log, host, limits.Watch))
	return mux
}
