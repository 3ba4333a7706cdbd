// Package navigation builds and resolves screen routes.
// Ids are placed into routes verbatim: no escaping, no validation.
package navigation

import (
	"errors"
	"strings"
)

const (
	ComicListRoute    = "comic_list"
	ComicDetailsRoute = "comic_details"
	ComicIDArg        = "comicId"

	separator = "/"
)

var ErrUnknownRoute = errors.New("unknown route")

type Screen int

const (
	ComicList Screen = iota + 1
	ComicDetails
)

func (s Screen) String() string {
	switch s {
	case ComicList:
		return ComicListRoute
	case ComicDetails:
		return ComicDetailsRoute
	default:
		return "unknown"
	}
}

// Destination is a resolved route. ComicID is only meaningful for ComicDetails;
// HasID is false when the route carried no id segment at all.
type Destination struct {
	Screen  Screen
	ComicID string
	HasID   bool
}

func ListRoute() string {
	return ComicListRoute
}

func DetailsRoute(id string) string {
	return ComicDetailsRoute + separator + id
}

// Route rebuilds the route string of a destination.
func (d Destination) Route() string {
	if d.Screen == ComicDetails {
		if !d.HasID {
			return ComicDetailsRoute
		}
		return DetailsRoute(d.ComicID)
	}
	return ListRoute()
}

func Resolve(route string) (Destination, error) {
	switch {
	case route == ComicListRoute:
		return Destination{Screen: ComicList}, nil
	case route == ComicDetailsRoute:
		return Destination{Screen: ComicDetails}, nil
	case strings.HasPrefix(route, ComicDetailsRoute+separator):
		return Destination{
			Screen:  ComicDetails,
			ComicID: strings.TrimPrefix(route, ComicDetailsRoute+separator),
			HasID:   true,
		}, nil
	default:
		return Destination{}, ErrUnknownRoute
	}
}
