package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	meta, err := shell.RetryWithExponentialBackoff(ctx, fn)

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnConcurrencyConflict(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return loanstore.ErrConcurrencyConflict
		}
		return nil
	}

	meta, err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_NonRetryableErrorFailsFast(t *testing.T) {
	ctx := context.Background()
	callCount := 0
	permanent := errors.New("permanent")

	fn := func(_ context.Context) error {
		callCount++
		return permanent
	}

	meta, err := shell.RetryWithExponentialBackoff(ctx, fn)

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "other", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_MaxAttemptsReached(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return loanstore.ErrConcurrencyConflict
	}

	meta, err := shell.RetryWithExponentialBackoff(ctx, fn,
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0.1),
	)

	assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Equal(t, "concurrency_conflict", meta.LastErrorType)
	assert.True(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fn := func(_ context.Context) error {
		cancel()
		return loanstore.ErrConcurrencyConflict
	}

	meta, err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Second))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	fn := func(_ context.Context) error { return nil }

	tests := []struct {
		name        string
		option      shell.RetryOption
		expectedErr error
	}{
		{"zero_max_attempts", shell.WithMaxAttempts(0), shell.ErrInvalidMaxAttempts},
		{"negative_base_delay", shell.WithBaseDelay(-time.Millisecond), shell.ErrNegativeBaseDelay},
		{"jitter_above_one", shell.WithJitterFactor(1.5), shell.ErrInvalidJitterFactor},
		{"jitter_below_zero", shell.WithJitterFactor(-0.1), shell.ErrInvalidJitterFactor},
		{"nil_logger", shell.WithRetryLogger(nil, "RenewLoan"), shell.ErrNilLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shell.RetryWithExponentialBackoff(ctx, fn, tt.option)

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
