package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/errors"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key the Redis sink writes.
const DefaultKeyPrefix = "clap:reset:"

// historyLimit caps the upload history list.
const historyLimit = 100

// Upload is the record stored for each reset upload.
type Upload struct {
	State      clap.State `json:"state"`
	UploadedAt time.Time  `json:"uploadedAt"`
}

// RedisSink stores uploads in Redis: the latest under "{prefix}last" and
// the most recent ones in the "{prefix}history" list.
type RedisSink struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
	closed atomic.Bool
}

// RedisOption configures a RedisSink.
type RedisOption func(*RedisSink)

// WithKeyPrefix sets the key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisSink) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL sets the expiration of the latest upload. Zero keeps it forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisSink) {
		s.ttl = ttl
	}
}

// WithNow sets the clock used to stamp uploads.
func WithNow(now func() time.Time) RedisOption {
	return func(s *RedisSink) {
		if now != nil {
			s.now = now
		}
	}
}

// NewRedis creates a RedisSink with its own client.
func NewRedis(addr, password string, db int, opts ...RedisOption) *RedisSink {
	return NewRedisFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisFromClient creates a RedisSink from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *RedisSink {
	s := &RedisSink{
		client: client,
		prefix: DefaultKeyPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSink) lastKey() string    { return s.prefix + "last" }
func (s *RedisSink) historyKey() string { return s.prefix + "history" }

// Notify implements ResetSink.
func (s *RedisSink) Notify(ctx context.Context, state clap.State) error {
	if s.closed.Load() {
		return errors.NewSinkError("publish reset", errors.ErrSinkClosed).WithSink("redis")
	}

	data, err := json.Marshal(Upload{State: state, UploadedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal upload: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.lastKey(), data, s.ttl)
	pipe.LPush(ctx, s.historyKey(), data)
	pipe.LTrim(ctx, s.historyKey(), 0, historyLimit-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return s.wrap("publish reset", s.lastKey(), err)
	}
	return nil
}

// Last returns the most recent upload.
func (s *RedisSink) Last(ctx context.Context) (Upload, error) {
	val, err := s.client.Get(ctx, s.lastKey()).Result()
	if err != nil {
		if err == backend.Nil {
			return Upload{}, errors.NewNotFoundError("reset upload", s.lastKey())
		}
		return Upload{}, s.wrap("read last reset", s.lastKey(), err)
	}

	var u Upload
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return Upload{}, fmt.Errorf("failed to unmarshal upload: %w", err)
	}
	return u, nil
}

// History returns up to n uploads, newest first.
func (s *RedisSink) History(ctx context.Context, n int) ([]Upload, error) {
	if n <= 0 {
		return nil, nil
	}
	vals, err := s.client.LRange(ctx, s.historyKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, s.wrap("read reset history", s.historyKey(), err)
	}

	uploads := make([]Upload, 0, len(vals))
	for _, v := range vals {
		var u Upload
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			return nil, fmt.Errorf("failed to unmarshal upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

// Ping checks the connection.
func (s *RedisSink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return s.wrap("ping", "", err)
	}
	return nil
}

// Close closes the client. Later calls to Notify fail with ErrSinkClosed.
func (s *RedisSink) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.Close()
}

func (s *RedisSink) wrap(op, key string, err error) error {
	var cause error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		cause = fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		cause = fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	default:
		cause = fmt.Errorf("%w: %w", errors.ErrSinkUnavailable, err)
	}
	e := errors.NewSinkError(op, cause).WithSink("redis")
	if key != "" {
		e = e.WithKey(key)
	}
	return e
}
