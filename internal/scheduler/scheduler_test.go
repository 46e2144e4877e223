package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"soccer_v1/predictor/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls   atomic.Int32
	release chan struct{}
}

func (r *countingRunner) RunAll(ctx context.Context) []*service.Report {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	return []*service.Report{{Competition: "Premier League"}}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := NewScheduler("not a cron spec", &countingRunner{})
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule predictions")
}

func TestStart_RunsOnSchedule(t *testing.T) {
	r := &countingRunner{}
	s := NewScheduler("@every 1s", r)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestRunNow_SkipsOverlappingRuns(t *testing.T) {
	r := &countingRunner{release: make(chan struct{})}
	s := NewScheduler("@daily", r)

	done := make(chan bool)
	go func() { done <- s.RunNow(context.Background()) }()

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.RunNow(context.Background()), "second run while the first is in flight")

	close(r.release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), r.calls.Load())

	assert.True(t, s.RunNow(context.Background()))
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestRunAsync_StopWaitsForRun(t *testing.T) {
	r := &countingRunner{release: make(chan struct{})}
	s := NewScheduler("@daily", r)

	s.RunAsync(context.Background())

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the run was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(r.release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
	assert.Equal(t, int32(1), r.calls.Load())
}
