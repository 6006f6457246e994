package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachVisitsAll(t *testing.T) {
	var sum atomic.Int64
	err := ForEach(context.Background(), []int{1, 2, 3, 4, 5}, 2, func(_ context.Context, v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), sum.Load())
}

func TestForEachLimitsWorkers(t *testing.T) {
	var running, peak atomic.Int32
	items := make([]int, 64)

	err := ForEach(context.Background(), items, 3, func(context.Context, int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEachCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	var cancelled atomic.Int32
	err := ForEach(context.Background(), []int{0, 1}, 0, func(ctx context.Context, v int) error {
		if v == 0 {
			return boom
		}
		<-ctx.Done()
		cancelled.Add(1)
		return ctx.Err()
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), cancelled.Load())
}

func TestParallelMapPreservesOrder(t *testing.T) {
	out, err := ParallelMap(context.Background(), []int{1, 2, 3, 4}, 4, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16}, out)
}

func TestParallelMapError(t *testing.T) {
	boom := errors.New("boom")
	out, err := ParallelMap(context.Background(), []string{"a", "b"}, 1, func(_ context.Context, v string) (string, error) {
		if v == "b" {
			return "", boom
		}
		return v, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}
