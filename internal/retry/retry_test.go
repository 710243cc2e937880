package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponential_DoublesEachDelay(t *testing.T) {
	p := Exponential(time.Second, 5)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}, p.Delays)
}

func TestFixed_RepeatsDelay(t *testing.T) {
	p := Fixed(2*time.Second, 3)
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		2 * time.Second,
		2 * time.Second,
	}, p.Delays)
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Fixed(time.Millisecond, 3).Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Fixed(time.Millisecond, 5).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsScheduleAndReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("still failing")
	err := Fixed(time.Millisecond, 5).Do(context.Background(), func() error {
		calls++
		return last
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, last)
	assert.Equal(t, 5, calls)
}

func TestDo_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Fixed(time.Minute, 5).Do(ctx, func() error {
		calls++
		cancel() // 最初の失敗後の待機中にキャンセルさせる
		return errors.New("fail")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Fixed(time.Millisecond, 3).Do(ctx, func() error {
		calls++
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}
