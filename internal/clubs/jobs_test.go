package clubs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTierJobRunsOnStartup(t *testing.T) {
	svc := new(MockService)
	ran := make(chan struct{}, 1)
	svc.On("RecomputeAll", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}).
		Return(&RecomputeSummary{Processed: 4, Verified: 3, Failed: []string{}}, nil)

	job := NewTierJob(svc, &JobConfig{Interval: time.Hour, RunOnStartup: true, Timeout: time.Second})
	job.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("recompute did not run on startup")
	}

	job.Stop()
	job.Stop()

	status := job.Status()
	assert.Equal(t, "1h0m0s", status["interval"])
	assert.Equal(t, "idle", status["status"])
	assert.Contains(t, status, "last_run")
	assert.Equal(t, RecomputeSummary{Processed: 4, Verified: 3, Failed: []string{}}, status["last_summary"])
}

func TestTierJobStopsWithContext(t *testing.T) {
	svc := new(MockService)
	job := NewTierJob(svc, &JobConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)
	cancel()
	job.Stop()

	svc.AssertNotCalled(t, "RecomputeAll", mock.Anything)
	assert.NotContains(t, job.Status(), "last_run")
}

func TestDefaultJobConfig(t *testing.T) {
	job := NewTierJob(new(MockService), &JobConfig{})
	assert.Equal(t, 6*time.Hour, job.config.Interval)
	assert.Equal(t, 10*time.Minute, job.config.Timeout)
}
