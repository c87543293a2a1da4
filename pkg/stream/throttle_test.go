package stream

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(flushed *[][]byte) FlushFunc {
	return func(frame []byte) error {
		*flushed = append(*flushed, frame)
		return nil
	}
}

func TestThrottleFirstEmitPassesImmediately(t *testing.T) {
	var flushed [][]byte
	th := NewThrottle(time.Hour, collect(&flushed))

	require.NoError(t, th.Emit([]byte("a")))
	require.Len(t, flushed, 1)
	assert.Equal(t, "a", string(flushed[0]))
}

func TestThrottleCoalescesInsideInterval(t *testing.T) {
	var flushed [][]byte
	th := NewThrottle(time.Hour, collect(&flushed))

	require.NoError(t, th.Emit([]byte("a")))
	require.NoError(t, th.Emit([]byte("b")))
	require.NoError(t, th.Emit([]byte("c")))

	// Only the first frame went out; b was replaced by c as pending.
	require.Len(t, flushed, 1)

	require.NoError(t, th.Flush())
	require.Len(t, flushed, 2)
	assert.Equal(t, "c", string(flushed[1]), "latest pending frame wins")
}

func TestThrottleFlushesAfterIntervalElapses(t *testing.T) {
	var flushed [][]byte
	th := NewThrottle(10*time.Millisecond, collect(&flushed))

	require.NoError(t, th.Emit([]byte("a")))
	time.Sleep(15 * time.Millisecond)
	require.NoError(t, th.Emit([]byte("b")))

	require.Len(t, flushed, 2)
}

func TestThrottleFlushWithoutPendingIsNoop(t *testing.T) {
	var flushed [][]byte
	th := NewThrottle(time.Hour, collect(&flushed))

	require.NoError(t, th.Emit([]byte("a")))
	require.NoError(t, th.Flush())
	require.NoError(t, th.Flush())

	assert.Len(t, flushed, 1, "second Flush had nothing pending")
}

func TestThrottlePropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("sink down")
	th := NewThrottle(0, func([]byte) error { return sinkErr })

	assert.ErrorIs(t, th.Emit([]byte("a")), sinkErr)
}
