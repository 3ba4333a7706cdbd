package screens

import (
	"context"
	"log/slog"
	"sync"
)

// machine runs load attempts for one screen.
//
// A new attempt cancels the previous one and bumps the generation; results
// are applied only by the current generation and never after Close.
type machine[T any] struct {
	log      *slog.Logger
	load     func(ctx context.Context) (T, error)
	describe func(error) string
	render   func(State[T]) View

	life context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu        sync.Mutex
	state     State[T]
	gen       uint64
	cancel    context.CancelFunc
	closed    bool
	watchers  map[int]chan View
	nextID    int
	followers []*follower
}

// follower queues every view for one reader, so nothing is skipped.
type follower struct {
	out   chan View
	wake  chan struct{}
	queue []View
	done  bool
}

func newMachine[T any](
	ctx context.Context,
	log *slog.Logger,
	load func(ctx context.Context) (T, error),
	describe func(error) string,
	render func(State[T]) View,
) *machine[T] {
	life, stop := context.WithCancel(ctx)
	return &machine[T]{
		log:      log,
		load:     load,
		describe: describe,
		render:   render,
		life:     life,
		stop:     stop,
		state:    Loading[T]{},
		watchers: make(map[int]chan View),
	}
}

// State returns the current state.
func (m *machine[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine[T]) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.render(m.state)
}

// Wait blocks until every attempt started so far has finished.
func (m *machine[T]) Wait() {
	m.wg.Wait()
}

// Watch delivers the current view and then every later one. The channel
// holds only the newest view, so a slow reader skips intermediate ones.
// It is closed by Close or by the returned stop func.
func (m *machine[T]) Watch() (<-chan View, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan View, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- m.render(m.state)

	id := m.nextID
	m.nextID++
	m.watchers[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.watchers[id]; ok {
			delete(m.watchers, id)
			close(c)
		}
	}
}

// Close discards any outstanding attempt. The screen never changes again.
func (m *machine[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.stop()
	for id, ch := range m.watchers {
		delete(m.watchers, id)
		close(ch)
	}
	for _, f := range m.followers {
		f.done = true
		wake(f.wake)
	}
	m.followers = nil
	m.log.Debug("screen closed")
}

// follow delivers every later view in order, however slow the reader is.
// The channel is closed after Close once the backlog is drained, so the
// reader must keep receiving until then.
func (m *machine[T]) follow() <-chan View {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := &follower{out: make(chan View), wake: make(chan struct{}, 1)}
	if m.closed {
		close(f.out)
		return f.out
	}
	m.followers = append(m.followers, f)
	go m.pump(f)
	return f.out
}

func (m *machine[T]) pump(f *follower) {
	defer close(f.out)
	for {
		m.mu.Lock()
		batch, done := f.queue, f.done
		f.queue = nil
		m.mu.Unlock()

		for _, v := range batch {
			f.out <- v
		}
		if done {
			return
		}
		<-f.wake
	}
}

func (m *machine[T]) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *machine[T]) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	gen := m.supersedeLocked()

	ctx, cancel := context.WithCancel(m.life)
	m.cancel = cancel
	m.setLocked(Loading[T]{})

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		data, err := m.load(ctx)
		m.finish(gen, data, err)
	}()
}

// fail moves straight to Failure without loading anything.
func (m *machine[T]) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.supersedeLocked()
	m.log.Warn("screen cannot load", "error", err)
	m.setLocked(Failure[T]{Message: m.describe(err)})
}

func (m *machine[T]) finish(gen uint64, data T, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || gen != m.gen {
		m.log.Debug("discarding superseded result", "generation", gen)
		return
	}
	m.cancel = nil
	if err != nil {
		m.log.Warn("screen load failed", "error", err)
		m.setLocked(Failure[T]{Message: m.describe(err)})
		return
	}
	m.setLocked(Success[T]{Data: data})
}

func (m *machine[T]) supersedeLocked() uint64 {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		m.log.Debug("superseding in-flight attempt", "generation", m.gen)
	}
	m.gen++
	return m.gen
}

func (m *machine[T]) setLocked(s State[T]) {
	m.state = s
	if len(m.watchers) == 0 && len(m.followers) == 0 {
		return
	}
	v := m.render(s)
	for _, ch := range m.watchers {
		offerLatest(ch, v)
	}
	for _, f := range m.followers {
		f.queue = append(f.queue, v)
		wake(f.wake)
	}
}

func wake(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// offerLatest replaces whatever is buffered in ch with v.
// Callers hold the machine lock, so they are the only senders.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
