package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withoutfanfare/developer-test/internal/config"
)

func TestNew_Drivers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.CacheConfig{Driver: DriverMemory, TTLSeconds: 60, MaxEntries: 8}},
		{name: "none", cfg: config.CacheConfig{Driver: DriverNone, TTLSeconds: 60}},
		{name: "badger", cfg: config.CacheConfig{Driver: DriverBadger, TTLSeconds: 60, BadgerPath: t.TempDir()}},
		{name: "unknown", cfg: config.CacheConfig{Driver: "redis"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := New(tc.cfg, nil)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
			_, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.Driver != DriverNone, found)
		})
	}
}

func TestDefaultTTL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.Hour, DefaultTTL(config.CacheConfig{TTLSeconds: 3600}))
}
