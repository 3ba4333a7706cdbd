package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"comicapp/catalog/core"
)

type stubComics struct {
	mu          sync.Mutex
	listCalls   int
	detailCalls int
	detailIDs   []string

	list    func(ctx context.Context, call int) ([]core.Comic, error)
	details func(ctx context.Context, call int, id string) (core.Comic, error)
}

func (s *stubComics) GetComics(ctx context.Context) ([]core.Comic, error) {
	s.mu.Lock()
	s.listCalls++
	call := s.listCalls
	s.mu.Unlock()
	return s.list(ctx, call)
}

func (s *stubComics) GetComicDetails(ctx context.Context, id string) (core.Comic, error) {
	s.mu.Lock()
	s.detailCalls++
	s.detailIDs = append(s.detailIDs, id)
	call := s.detailCalls
	s.mu.Unlock()
	return s.details(ctx, call, id)
}

func (s *stubComics) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, s.detailCalls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func listReturning(comics []core.Comic, err error) *stubComics {
	return &stubComics{list: func(context.Context, int) ([]core.Comic, error) { return comics, err }}
}

func detailsReturning(c core.Comic, err error) *stubComics {
	return &stubComics{details: func(context.Context, int, string) (core.Comic, error) { return c, err }}
}

func TestListScreenSuccess(t *testing.T) {
	comics := []core.Comic{{ID: "1", Title: "One"}, {ID: "2", Title: "Two"}}
	s := NewListScreen(context.Background(), testLogger(), listReturning(comics, nil))
	defer s.Close()
	s.Wait()

	st, ok := s.State().(Success[[]core.Comic])
	require.True(t, ok, "got %#v", s.State())
	require.Equal(t, comics, st.Data)

	v := s.View()
	require.Equal(t, StatusSuccess, v.Status)
	require.Equal(t, "comic_list", v.Route)
	require.Equal(t, comics, v.Comics)
	require.Empty(t, v.Message)
}

func TestListScreenEmptyIsSuccess(t *testing.T) {
	s := NewListScreen(context.Background(), testLogger(), listReturning([]core.Comic{}, nil))
	defer s.Close()
	s.Wait()

	st, ok := s.State().(Success[[]core.Comic])
	require.True(t, ok)
	require.Empty(t, st.Data)
	require.Equal(t, StatusSuccess, s.View().Status)
}

func TestListScreenStartsLoading(t *testing.T) {
	release := make(chan struct{})
	stub := &stubComics{list: func(context.Context, int) ([]core.Comic, error) {
		<-release
		return nil, nil
	}}
	s := NewListScreen(context.Background(), testLogger(), stub)
	defer s.Close()

	require.IsType(t, Loading[[]core.Comic]{}, s.State())
	require.Equal(t, StatusLoading, s.View().Status)
	close(release)
	s.Wait()
}

func TestListScreenErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: dial tcp: connection refused", core.ErrNetwork), MsgListNetwork},
		{fmt.Errorf("%w: 503 Service Unavailable", core.ErrProtocol), MsgListProtocol},
		{fmt.Errorf("%w: unexpected EOF", core.ErrDecode), MsgListDecode},
		{errors.New("boom"), MsgListUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := NewListScreen(context.Background(), testLogger(), listReturning(nil, tt.err))
			defer s.Close()
			s.Wait()

			st, ok := s.State().(Failure[[]core.Comic])
			require.True(t, ok)
			require.Equal(t, tt.want, st.Message)
			require.NotEmpty(t, st.Message)
		})
	}
}

func TestListScreenRetryRecovers(t *testing.T) {
	stub := &stubComics{list: func(_ context.Context, call int) ([]core.Comic, error) {
		if call == 1 {
			return nil, fmt.Errorf("%w: timeout", core.ErrNetwork)
		}
		return []core.Comic{{ID: "1"}}, nil
	}}
	s := NewListScreen(context.Background(), testLogger(), stub)
	defer s.Close()
	s.Wait()
	require.Equal(t, StatusError, s.View().Status)

	s.Retry()
	s.Wait()
	require.Equal(t, StatusSuccess, s.View().Status)
	require.Len(t, s.View().Comics, 1)

	lists, _ := stub.calls()
	require.Equal(t, 2, lists)
}

func TestListScreenRetrySupersedesInFlight(t *testing.T) {
	release := make(chan struct{})
	stub := &stubComics{list: func(ctx context.Context, _ int) ([]core.Comic, error) {
		<-release
		if ctx.Err() != nil {
			return []core.Comic{{ID: "stale"}}, nil
		}
		return []core.Comic{{ID: "fresh"}}, nil
	}}
	s := NewListScreen(context.Background(), testLogger(), stub)
	defer s.Close()

	s.Retry()
	require.Eventually(t, func() bool {
		lists, _ := stub.calls()
		return lists == 2
	}, time.Second, 5*time.Millisecond)

	close(release)
	s.Wait()

	st, ok := s.State().(Success[[]core.Comic])
	require.True(t, ok, "got %#v", s.State())
	require.Equal(t, "fresh", st.Data[0].ID)
	lists, _ := stub.calls()
	require.Equal(t, 2, lists)
}

func TestListScreenRetryCancelsInFlight(t *testing.T) {
	release := make(chan struct{})
	var cancelled atomic.Int32
	stub := &stubComics{list: func(ctx context.Context, _ int) ([]core.Comic, error) {
		select {
		case <-ctx.Done():
			cancelled.Add(1)
			return nil, fmt.Errorf("%w: %w", core.ErrNetwork, ctx.Err())
		case <-release:
			return []core.Comic{}, nil
		}
	}}
	s := NewListScreen(context.Background(), testLogger(), stub)
	defer s.Close()

	s.Retry()
	require.Eventually(t, func() bool {
		return cancelled.Load() == 1
	}, time.Second, 5*time.Millisecond, "first attempt was not cancelled")
	require.Equal(t, StatusLoading, s.View().Status)

	close(release)
	s.Wait()
	require.Equal(t, StatusSuccess, s.View().Status)
	require.EqualValues(t, 1, cancelled.Load())
}

func TestFollowDeliversEveryView(t *testing.T) {
	stub := &stubComics{list: func(_ context.Context, call int) ([]core.Comic, error) {
		if call == 1 {
			return nil, fmt.Errorf("%w: timeout", core.ErrNetwork)
		}
		return []core.Comic{{ID: "1"}}, nil
	}}
	s := newListScreen(context.Background(), testLogger(), stub)
	views := s.follow()

	// nothing is read until the screen is closed
	s.Retry()
	s.Wait()
	s.Retry()
	s.Wait()
	s.Close()

	var got []Status
	for v := range views {
		got = append(got, v.Status)
	}
	require.Equal(t, []Status{StatusLoading, StatusError, StatusLoading, StatusSuccess}, got)
}

func TestFollowAfterCloseIsClosed(t *testing.T) {
	s := newListScreen(context.Background(), testLogger(), listReturning(nil, nil))
	s.Close()
	_, open := <-s.follow()
	require.False(t, open)
}

func TestListScreenCloseDiscardsResult(t *testing.T) {
	release := make(chan struct{})
	stub := &stubComics{list: func(context.Context, int) ([]core.Comic, error) {
		<-release
		return []core.Comic{{ID: "late"}}, nil
	}}
	s := NewListScreen(context.Background(), testLogger(), stub)
	views, _ := s.Watch()

	first := <-views
	require.Equal(t, StatusLoading, first.Status)

	s.Close()
	close(release)
	s.Wait()

	require.IsType(t, Loading[[]core.Comic]{}, s.State())
	_, open := <-views
	require.False(t, open, "watch channel must be closed after Close")

	s.Retry()
	s.Wait()
	lists, _ := stub.calls()
	require.Equal(t, 1, lists, "retry after close must not fetch")
	require.True(t, s.Closed())
}

func TestListScreenParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &stubComics{list: func(ctx context.Context, _ int) ([]core.Comic, error) {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %w", core.ErrNetwork, ctx.Err())
	}}
	s := NewListScreen(ctx, testLogger(), stub)
	defer s.Close()

	cancel()
	s.Wait()
	require.Equal(t, MsgListNetwork, s.View().Message)
}

func TestWatchDeliversLatest(t *testing.T) {
	release := make(chan struct{})
	stub := &stubComics{list: func(context.Context, int) ([]core.Comic, error) {
		<-release
		return []core.Comic{{ID: "1"}}, nil
	}}
	s := NewListScreen(context.Background(), testLogger(), stub)
	defer s.Close()

	views, stop := s.Watch()
	require.Equal(t, StatusLoading, (<-views).Status)

	close(release)
	select {
	case v := <-views:
		require.Equal(t, StatusSuccess, v.Status)
		require.Len(t, v.Comics, 1)
	case <-time.After(time.Second):
		t.Fatal("no view after load")
	}

	stop()
	_, open := <-views
	require.False(t, open)
	stop()
}

func TestWatchAfterCloseIsClosed(t *testing.T) {
	s := NewListScreen(context.Background(), testLogger(), listReturning(nil, nil))
	s.Wait()
	s.Close()
	s.Close()

	views, stop := s.Watch()
	defer stop()
	_, open := <-views
	require.False(t, open)
}

func TestDetailsScreenSuccess(t *testing.T) {
	comic := core.Comic{ID: "7", Title: "Seven", Creators: []string{}}
	stub := detailsReturning(comic, nil)
	s := NewDetailsScreen(context.Background(), testLogger(), stub, "7")
	defer s.Close()
	s.Wait()

	st, ok := s.State().(Success[core.Comic])
	require.True(t, ok)
	require.Equal(t, comic, st.Data)

	v := s.View()
	require.Equal(t, "comic_details/7", v.Route)
	require.Equal(t, "7", s.ComicID())
	require.NotNil(t, v.Comic)
	require.Equal(t, comic, *v.Comic)
	require.Equal(t, []string{"7"}, stub.detailIDs)
}

func TestDetailsScreenMissingID(t *testing.T) {
	stub := detailsReturning(core.Comic{}, nil)
	s := NewDetailsScreen(context.Background(), testLogger(), stub, "")
	defer s.Close()

	st, ok := s.State().(Failure[core.Comic])
	require.True(t, ok)
	require.Equal(t, "Comic ID is missing.", st.Message)

	s.Retry()
	s.Wait()
	require.Equal(t, MsgDetailsMissingID, s.View().Message)
	require.Equal(t, "comic_details/", s.Route())

	_, details := stub.calls()
	require.Zero(t, details, "fetch must never run without an id")
}

func TestDetailsScreenErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: reset by peer", core.ErrNetwork), "Failed to load comic details."},
		{fmt.Errorf("%w: route has no id", core.ErrMissingID), "Comic ID is missing."},
		{fmt.Errorf("%w: id %q", core.ErrNotFound, "9"), "Comic not found."},
		{fmt.Errorf("%w: 500", core.ErrProtocol), "An unexpected error occurred."},
		{fmt.Errorf("%w: bad json", core.ErrDecode), "An unexpected error occurred."},
		{errors.New("boom"), "An unexpected error occurred."},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := NewDetailsScreen(context.Background(), testLogger(), detailsReturning(core.Comic{}, tt.err), "9")
			defer s.Close()
			s.Wait()

			v := s.View()
			require.Equal(t, StatusError, v.Status)
			require.Equal(t, tt.want, v.Message)
			require.Nil(t, v.Comic)
		})
	}
}

func TestDetailsScreenRetryUsesSameID(t *testing.T) {
	stub := &stubComics{details: func(_ context.Context, call int, id string) (core.Comic, error) {
		if call == 1 {
			return core.Comic{}, core.ErrNetwork
		}
		return core.Comic{ID: id, Title: "Found"}, nil
	}}
	s := NewDetailsScreen(context.Background(), testLogger(), stub, "a#1")
	defer s.Close()
	s.Wait()
	require.Equal(t, MsgDetailsNetwork, s.View().Message)

	s.Retry()
	s.Wait()
	require.Equal(t, StatusSuccess, s.View().Status)
	require.Equal(t, []string{"a#1", "a#1"}, stub.detailIDs)
	require.Equal(t, "comic_details/a#1", s.Route())
}
