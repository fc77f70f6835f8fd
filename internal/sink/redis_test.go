package sink

import (
	"context"
	"testing"
	"time"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, opts ...RedisOption) (*RedisSink, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := NewRedisFromClient(client, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisSink_NotifyAndLast(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s, mr := newTestRedis(t, WithNow(func() time.Time { return stamp }))
	ctx := context.Background()

	if _, err := s.Last(ctx); !errors.Is(err, &errors.NotFoundError{}) {
		t.Fatalf("Last() on empty store error = %v, want NotFoundError", err)
	}

	state := clap.DefaultInitialState
	if err := s.Notify(ctx, state); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	got, err := s.Last(ctx)
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if got.State != state {
		t.Errorf("State = %+v, want %+v", got.State, state)
	}
	if !got.UploadedAt.Equal(stamp) {
		t.Errorf("UploadedAt = %v, want %v", got.UploadedAt, stamp)
	}
	if !mr.Exists(DefaultKeyPrefix + "last") {
		t.Errorf("expected key %q", DefaultKeyPrefix+"last")
	}
}

func TestRedisSink_History(t *testing.T) {
	s, _ := newTestRedis(t, WithKeyPrefix("test:"))
	ctx := context.Background()

	for i := range 3 {
		if err := s.Notify(ctx, clap.State{CountTotal: 56 + i}); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
	}

	history, err := s.History(ctx, 2)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(history))
	}
	if history[0].State.CountTotal != 58 || history[1].State.CountTotal != 57 {
		t.Errorf("History order = %d, %d; want newest first", history[0].State.CountTotal, history[1].State.CountTotal)
	}

	if none, _ := s.History(ctx, 0); none != nil {
		t.Errorf("History(0) = %v, want nil", none)
	}
}

func TestRedisSink_TTL(t *testing.T) {
	s, mr := newTestRedis(t, WithTTL(time.Minute))

	if err := s.Notify(context.Background(), clap.DefaultInitialState); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if mr.Exists(DefaultKeyPrefix + "last") {
		t.Error("last upload should expire after the TTL")
	}
}

func TestRedisSink_Unavailable(t *testing.T) {
	s, mr := newTestRedis(t)
	mr.Close()

	err := s.Notify(context.Background(), clap.DefaultInitialState)
	if err == nil {
		t.Fatal("Notify() against a stopped server should fail")
	}
	if !errors.Is(err, errors.ErrSinkUnavailable) {
		t.Errorf("error = %v, want ErrSinkUnavailable", err)
	}
	if !errors.IsRetryable(err) {
		t.Error("connection failures should be retryable")
	}
}

func TestRedisSink_Closed(t *testing.T) {
	s, _ := newTestRedis(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err := s.Notify(context.Background(), clap.DefaultInitialState)
	if !errors.Is(err, errors.ErrSinkClosed) {
		t.Errorf("Notify() after Close error = %v, want ErrSinkClosed", err)
	}
}

func TestRedisSink_Ping(t *testing.T) {
	s, _ := newTestRedis(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
