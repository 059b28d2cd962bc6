package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/withoutfanfare/developer-test/internal/config"
)

// ErrCacheUnavailable wraps every backend failure.
var ErrCacheUnavailable = errors.New("cache unavailable")

// Store is a TTL key/value cache for report payloads.
type Store interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as found=false with a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Has reports whether key holds an unexpired entry.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// Driver names accepted by New.
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverNone   = "none"
)

// New builds the backend selected by cfg.Driver and wraps it with tracing
// and metrics.
func New(cfg config.CacheConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		backend Store
		err     error
	)
	switch cfg.Driver {
	case DriverMemory:
		backend, err = NewMemoryStore(cfg.MaxEntries, DefaultTTL(cfg))
	case DriverBadger:
		backend, err = NewBadgerStore(BadgerConfig{Path: cfg.BadgerPath}, logger)
	case DriverNone, "":
		backend = NopStore{}
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("report cache ready",
		slog.String("driver", cfg.Driver),
		slog.Duration("ttl", DefaultTTL(cfg)))
	return Instrument(backend, cfg.Driver), nil
}

// DefaultTTL converts cfg.TTLSeconds to a duration.
func DefaultTTL(cfg config.CacheConfig) time.Duration {
	return time.Duration(cfg.TTLSeconds) * time.Second
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCacheUnavailable, op, err)
}
