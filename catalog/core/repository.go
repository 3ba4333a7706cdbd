package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Repository serves comics straight from the source on every call.
// The source has no per-id endpoint, so details are looked up in the full list.
type Repository struct {
	log     *slog.Logger
	fetcher Fetcher
}

func NewRepository(log *slog.Logger, fetcher Fetcher) (*Repository, error) {
	if log == nil || fetcher == nil {
		return nil, ErrNilDependency
	}
	return &Repository{log: log, fetcher: fetcher}, nil
}

func (r *Repository) GetComics(ctx context.Context) ([]Comic, error) {
	recs, err := r.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Debug("comics fetched", "count", len(recs))
	return ToComics(recs), nil
}

func (r *Repository) GetComicDetails(ctx context.Context, id string) (Comic, error) {
	comics, err := r.GetComics(ctx)
	if err != nil {
		return Comic{}, err
	}
	for _, c := range comics {
		if c.ID == id {
			return c, nil
		}
	}
	return Comic{}, fmt.Errorf("%w: id %q", ErrNotFound, id)
}
