package screens

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"comicapp/catalog/core"
	"comicapp/catalog/navigation"
)

var (
	ErrSessionNotFound = errors.New("screen session is not found")
	ErrTooManyScreens  = errors.New("too many open screens")
)

// Screen is what a renderer needs from either screen kind.
type Screen interface {
	Route() string
	View() View
	Watch() (<-chan View, func())
	Retry()
	Close()
	Wait()
}

// Publisher receives every view a hosted screen goes through, in order.
type Publisher interface {
	PublishView(session string, v View)
}

// Host keeps open screens by session id, the way a navigation host keeps
// its back stack entries alive.
type Host struct {
	log    *slog.Logger
	comics core.Comics
	events Publisher
	ctx    context.Context
	limit  int

	mu      sync.Mutex
	screens map[string]Screen
}

// NewHost creates a host whose screens live at most as long as ctx.
// events may be nil. At most maxScreens screens are open at once;
// a non-positive maxScreens leaves the count unbounded.
func NewHost(ctx context.Context, log *slog.Logger, comics core.Comics, events Publisher, maxScreens int) (*Host, error) {
	if log == nil || comics == nil {
		return nil, core.ErrNilDependency
	}
	return &Host{
		log:     log,
		comics:  comics,
		events:  events,
		ctx:     ctx,
		limit:   maxScreens,
		screens: make(map[string]Screen),
	}, nil
}

// Open resolves route and starts the matching screen.
// It fails with ErrTooManyScreens once the host is full.
func (h *Host) Open(route string) (string, Screen, error) {
	dest, err := navigation.Resolve(route)
	if err != nil {
		return "", nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.limit > 0 && len(h.screens) >= h.limit {
		h.log.Warn("screen rejected", "route", route, "open", len(h.screens))
		return "", nil, ErrTooManyScreens
	}

	session := uuid.NewString()
	log := h.log.With("session", session)

	var (
		s      Screen
		follow func() <-chan View
	)
	switch dest.Screen {
	case navigation.ComicList:
		ls := newListScreen(h.ctx, log, h.comics)
		s, follow = ls, ls.follow
	case navigation.ComicDetails:
		ds := newDetailsScreen(h.ctx, log, h.comics, dest.ComicID)
		s, follow = ds, ds.follow
	default:
		return "", nil, navigation.ErrUnknownRoute
	}
	h.screens[session] = s

	if h.events != nil {
		views := follow()
		go func() {
			for v := range views {
				h.events.PublishView(session, v)
			}
		}()
	}
	s.Retry()

	log.Info("screen opened", "route", s.Route())
	return session, s, nil
}

func (h *Host) Get(session string) (Screen, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.screens[session]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (h *Host) Close(session string) error {
	h.mu.Lock()
	s, ok := h.screens[session]
	delete(h.screens, session)
	h.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	h.log.Info("screen closed", "session", session)
	return nil
}

func (h *Host) CloseAll() {
	h.mu.Lock()
	screens := h.screens
	h.screens = make(map[string]Screen)
	h.mu.Unlock()

	for _, s := range screens {
		s.Close()
	}
}

func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.screens)
}
