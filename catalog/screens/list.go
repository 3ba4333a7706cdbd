package screens

import (
	"context"
	"errors"
	"log/slog"

	"comicapp/catalog/core"
	"comicapp/catalog/navigation"
)

const (
	MsgListNetwork    = "Failed to load comics: check your connection."
	MsgListProtocol   = "Failed to load comics: the server returned an error."
	MsgListDecode     = "Failed to load comics: the server sent an unexpected response."
	MsgListUnexpected = "Failed to load comics."
)

type ListState = State[[]core.Comic]

// ListScreen shows every comic in source order. An empty list is a success.
type ListScreen struct {
	*machine[[]core.Comic]
	route string
}

// NewListScreen enters Loading and starts fetching immediately.
// ctx bounds the screen lifetime; Close ends it early.
func NewListScreen(ctx context.Context, log *slog.Logger, comics core.Comics) *ListScreen {
	s := newListScreen(ctx, log, comics)
	s.Retry()
	return s
}

func newListScreen(ctx context.Context, log *slog.Logger, comics core.Comics) *ListScreen {
	route := navigation.ListRoute()
	s := &ListScreen{route: route}
	s.machine = newMachine(
		ctx,
		log.With("screen", route),
		comics.GetComics,
		listMessage,
		func(st ListState) View { return listView(route, st) },
	)
	return s
}

func (s *ListScreen) Route() string {
	return s.route
}

// Retry starts a new fetch, superseding one still in flight.
func (s *ListScreen) Retry() {
	s.begin()
}

func listMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrNetwork):
		return MsgListNetwork
	case errors.Is(err, core.ErrProtocol):
		return MsgListProtocol
	case errors.Is(err, core.ErrDecode):
		return MsgListDecode
	default:
		return MsgListUnexpected
	}
}
