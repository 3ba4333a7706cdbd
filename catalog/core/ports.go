package core

import "context"

// Fetcher is the single I/O boundary: it returns every record the source has.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]ComicRecord, error)
}

type Comics interface {
	GetComics(ctx context.Context) ([]Comic, error)
	GetComicDetails(ctx context.Context, id string) (Comic, error)
}
