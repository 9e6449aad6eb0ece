package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil", err: nil, retryable: false},
		{name: "no rows", err: sql.ErrNoRows, retryable: false},
		{name: "context deadline", err: context.DeadlineExceeded, retryable: false},
		{name: "context canceled", err: context.Canceled, retryable: false},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, retryable: false},
		{name: "not null violation", err: &pgconn.PgError{Code: "23502"}, retryable: false},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, retryable: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, retryable: true},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, retryable: true},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, retryable: true},
		{name: "cannot connect now", err: &pgconn.PgError{Code: "57P03"}, retryable: true},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, retryable: false},
		{name: "connection refused message", err: errors.New("dial tcp: connection refused"), retryable: true},
		{name: "broken pipe message", err: errors.New("write: broken pipe"), retryable: true},
		{name: "generic error", err: errors.New("something else entirely"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}

func TestSQLState(t *testing.T) {
	t.Run("pgx error", func(t *testing.T) {
		code, ok := sqlState(&pgconn.PgError{Code: "23505"})
		require.True(t, ok)
		assert.Equal(t, "23505", code)
	})

	t.Run("wrapped pgx error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("query failed"), &pgconn.PgError{Code: "40001"})
		code, ok := sqlState(wrapped)
		require.True(t, ok)
		assert.Equal(t, "40001", code)
	})

	t.Run("plain error has no state", func(t *testing.T) {
		_, ok := sqlState(errors.New("nope"))
		assert.False(t, ok)
	})
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		EnableRetry:  true,
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fastRetryConfig(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors until success", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fastRetryConfig(), func() error {
			calls++
			if calls < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := &pgconn.PgError{Code: "23505"}
		err := RetryWithBackoff(context.Background(), fastRetryConfig(), func() error {
			calls++
			return permanent
		})
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, permanent)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fastRetryConfig(), func() error {
			calls++
			return &pgconn.PgError{Code: "08006"}
		})
		assert.Equal(t, 3, calls)
		assert.Error(t, err)
	})

	t.Run("disabled retry runs once", func(t *testing.T) {
		cfg := fastRetryConfig()
		cfg.EnableRetry = false
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return &pgconn.PgError{Code: "08006"}
		})
		assert.Equal(t, 1, calls)
		assert.Error(t, err)
	})

	t.Run("honors context cancellation between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryWithBackoff(ctx, fastRetryConfig(), func() error {
			calls++
			cancel()
			return &pgconn.PgError{Code: "08006"}
		})
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
