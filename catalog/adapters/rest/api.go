package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"comicapp/catalog/adapters/viewdto"
	"comicapp/catalog/navigation"
	"comicapp/catalog/screens"
)

type Host interface {
	Open(route string) (string, screens.Screen, error)
	Get(session string) (screens.Screen, error)
	Close(session string) error
}

type openRequest struct {
	Route string `json:"route"`
}

type screenReply struct {
	Session string       `json:"session"`
	Route   string       `json:"route"`
	State   viewdto.View `json:"state"`
}

type errorReply struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorReply{Error: msg})
}

func NewPingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func NewOpenScreenHandler(log *slog.Logger, host Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		session, s, err := host.Open(req.Route)
		if err != nil {
			switch {
			case errors.Is(err, navigation.ErrUnknownRoute):
				writeError(w, http.StatusBadRequest, "unknown route")
				return
			case errors.Is(err, screens.ErrTooManyScreens):
				writeError(w, http.StatusServiceUnavailable, "too many open screens")
				return
			}
			log.Error("open screen failed", "route", req.Route, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, screenReply{
			Session: session,
			Route:   s.Route(),
			State:   viewdto.FromView(s.View()),
		})
	}
}

func NewScreenHandler(log *slog.Logger, host Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := r.PathValue("session")
		s, ok := lookup(w, log, host, session)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, screenReply{
			Session: session,
			Route:   s.Route(),
			State:   viewdto.FromView(s.View()),
		})
	}
}

func NewRetryHandler(log *slog.Logger, host Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := r.PathValue("session")
		s, ok := lookup(w, log, host, session)
		if !ok {
			return
		}
		s.Retry()
		log.Debug("screen retry requested", "session", session)
		writeJSON(w, http.StatusAccepted, screenReply{
			Session: session,
			Route:   s.Route(),
			State:   viewdto.FromView(s.View()),
		})
	}
}

func NewCloseScreenHandler(log *slog.Logger, host Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := host.Close(r.PathValue("session"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, screens.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "screen not found")
		default:
			log.Error("close screen failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func lookup(w http.ResponseWriter, log *slog.Logger, host Host, session string) (screens.Screen, bool) {
	s, err := host.Get(session)
	if err != nil {
		if errors.Is(err, screens.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "screen not found")
			return nil, false
		}
		log.Error("get screen failed", "session", session, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return s, true
}
