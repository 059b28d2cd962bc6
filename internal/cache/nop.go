package cache

import (
	"context"
	"time"
)

// NopStore never holds anything; every request runs the full pipeline.
type NopStore struct{}

var _ Store = NopStore{}

func (NopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NopStore) Has(context.Context, string) (bool, error) { return false, nil }

func (NopStore) Close() error { return nil }
