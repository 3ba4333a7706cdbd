package screens

import (
	"context"
	"errors"
	"log/slog"

	"comicapp/catalog/core"
	"comicapp/catalog/navigation"
)

const (
	MsgDetailsMissingID  = "Comic ID is missing."
	MsgDetailsNetwork    = "Failed to load comic details."
	MsgDetailsNotFound   = "Comic not found."
	MsgDetailsUnexpected = "An unexpected error occurred."
)

type DetailsState = State[core.Comic]

// DetailsScreen shows one comic picked by id from the full list.
type DetailsScreen struct {
	*machine[core.Comic]
	route string
	id    string
}

// NewDetailsScreen fails straight away, without fetching, when id is empty.
func NewDetailsScreen(ctx context.Context, log *slog.Logger, comics core.Comics, id string) *DetailsScreen {
	s := newDetailsScreen(ctx, log, comics, id)
	s.Retry()
	return s
}

func newDetailsScreen(ctx context.Context, log *slog.Logger, comics core.Comics, id string) *DetailsScreen {
	route := navigation.DetailsRoute(id)
	s := &DetailsScreen{route: route, id: id}
	s.machine = newMachine(
		ctx,
		log.With("screen", navigation.ComicDetailsRoute, "comic_id", id),
		func(ctx context.Context) (core.Comic, error) {
			return comics.GetComicDetails(ctx, id)
		},
		detailsMessage,
		func(st DetailsState) View { return detailsView(route, st) },
	)
	return s
}

func (s *DetailsScreen) Route() string {
	return s.route
}

func (s *DetailsScreen) ComicID() string {
	return s.id
}

// Retry repeats the lookup for the same id.
func (s *DetailsScreen) Retry() {
	if s.id == "" {
		s.fail(core.ErrMissingID)
		return
	}
	s.begin()
}

func detailsMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrMissingID):
		return MsgDetailsMissingID
	case errors.Is(err, core.ErrNetwork):
		return MsgDetailsNetwork
	case errors.Is(err, core.ErrNotFound):
		return MsgDetailsNotFound
	default:
		return MsgDetailsUnexpected
	}
}
