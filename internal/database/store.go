// internal/database/store.go
package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNilPool is reported for a connect attempt that returned neither a pool
// nor an error.
var ErrNilPool = errors.New("connector returned no pool")

// Pool is a real database connection pool.
type Pool interface {
	Executor
	Close() error
}

// Connector opens a Pool. Each call is a single attempt.
type Connector interface {
	Connect(ctx context.Context) (Pool, error)
}

type ConnectorFunc func(ctx context.Context) (Pool, error)

func (f ConnectorFunc) Connect(ctx context.Context) (Pool, error) {
	return f(ctx)
}

// state pairs the executor with its mode so both are published together.
type state struct {
	executor  Executor
	pool      Pool
	connected bool
}

// Store is the data-access entry point for the whole service. It starts in
// fallback mode and switches to a real pool at most once.
type Store struct {
	current  atomic.Pointer[state]
	fallback *state
	log      logrus.FieldLogger
}

func NewStore(log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		fallback: &state{executor: fallbackExecutor{}},
		log:      log,
	}
	s.current.Store(s.fallback)
	return s
}

// Execute runs statement against whichever implementation is current when
// the call starts. Connectivity problems never surface here.
func (s *Store) Execute(ctx context.Context, statement string, args ...interface{}) (Result, error) {
	return s.current.Load().executor.Execute(ctx, statement, args...)
}

// IsFallback reports whether no real pool has been attached yet.
func (s *Store) IsFallback() bool {
	return !s.current.Load().connected
}

func (s *Store) Connected() bool {
	return s.current.Load().connected
}

// Attach publishes pool as the live implementation. It returns false when
// pool is nil or a pool is already attached, in which case the caller still
// owns pool.
func (s *Store) Attach(pool Pool) bool {
	if pool == nil {
		return false
	}
	return s.current.CompareAndSwap(s.fallback, &state{executor: pool, pool: pool, connected: true})
}

// Close releases the attached pool, if any. The store keeps its mode.
func (s *Store) Close() error {
	st := s.current.Load()
	if st.pool == nil {
		return nil
	}
	return st.pool.Close()
}

type ConnectOptions struct {
	Attempts int
	// Timeout bounds all attempts together.
	Timeout time.Duration
	Backoff time.Duration
}

// ConnectAsync tries to attach a pool in the background. The returned
// channel receives true once a pool is attached, or false when every attempt
// failed, and is then closed.
func (s *Store) ConnectAsync(ctx context.Context, connector Connector, opts ConnectOptions) <-chan bool {
	done := make(chan bool, 1)

	go func() {
		defer close(done)
		done <- s.connect(ctx, connector, opts)
	}()

	return done
}

func (s *Store) connect(ctx context.Context, connector Connector, opts ConnectOptions) bool {
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := s.tryConnect(ctx, connector)
		if err == nil {
			if !s.Attach(pool) {
				pool.Close()
				s.log.Warn("database pool already attached; discarding duplicate connection")
				return true
			}
			s.log.WithField("attempt", attempt).Info("database connected; leaving fallback mode")
			return true
		}

		s.log.WithFields(logrus.Fields{
			"attempt":  attempt,
			"attempts": attempts,
			"error":    err.Error(),
		}).Warn("database connection attempt failed")

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			s.log.WithField("error", ctx.Err().Error()).Warn("database unreachable; serving in fallback mode")
			return false
		case <-time.After(opts.Backoff * time.Duration(attempt)):
		}
	}

	s.log.Warn("database unreachable; serving in fallback mode")
	return false
}

func (s *Store) tryConnect(ctx context.Context, connector Connector) (pool Pool, err error) {
	defer func() {
		if r := recover(); r != nil {
			pool, err = nil, fmt.Errorf("connector panicked: %v", r)
		}
	}()
	pool, err = connector.Connect(ctx)
	if err == nil && pool == nil {
		err = ErrNilPool
	}
	return pool, err
}
