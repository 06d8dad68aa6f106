package engine_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/wordfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCancelStopsCallbacks(t *testing.T) {
	var calls atomic.Int64
	task := engine.Every(time.Millisecond, func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	task.Cancel()
	task.Cancel()
	task.Wait()
	assert.True(t, task.Done())

	stopped := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestRunningEngineStopsOnPause(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.SpawnInterval = 2 * time.Millisecond
	cfg.FrameInterval = time.Millisecond
	cfg.ClockInterval = 5 * time.Millisecond

	e, err := engine.New(testCatalog(t), cfg, engine.WithLogger(discardLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	e.SetPlayfield(800, 600)

	startList(t, e, "pets", 0)
	require.Eventually(t, func() bool {
		snap := e.Snapshot()
		return len(snap.Items) > 0 && snap.Elapsed > 0
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, e.Pause())
	paused := e.Snapshot()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, paused, e.Snapshot())

	require.NoError(t, e.Close())
	assert.Equal(t, paused, e.Snapshot())
}
