package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptionsWithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("zero values get defaults", func(t *testing.T) {
		opts := Options{URL: "postgres://localhost:5432/professores"}.withDefaults()
		require.Equal(t, int32(10), opts.MaxConns)
		require.Equal(t, int32(0), opts.MinConns)
		require.Equal(t, 30*time.Minute, opts.MaxConnLifetime)
		require.Equal(t, 5*time.Minute, opts.MaxConnIdleTime)
		require.Equal(t, 30*time.Second, opts.HealthCheckPeriod)
	})

	t.Run("configured values pass through", func(t *testing.T) {
		opts := Options{
			MaxConns:          20,
			MinConns:          5,
			MaxConnLifetime:   time.Hour,
			MaxConnIdleTime:   10 * time.Minute,
			HealthCheckPeriod: time.Minute,
		}.withDefaults()
		require.Equal(t, int32(20), opts.MaxConns)
		require.Equal(t, int32(5), opts.MinConns)
		require.Equal(t, time.Hour, opts.MaxConnLifetime)
		require.Equal(t, 10*time.Minute, opts.MaxConnIdleTime)
		require.Equal(t, time.Minute, opts.HealthCheckPeriod)
	})

	t.Run("min conns above max is reset", func(t *testing.T) {
		opts := Options{MaxConns: 4, MinConns: 8}.withDefaults()
		require.Equal(t, int32(4), opts.MaxConns)
		require.Equal(t, int32(0), opts.MinConns)
	})
}
