package clubs

import (
	"context"
	"sync"
	"time"

	"clubly/pkg/logger"
)

// TierJob periodically recomputes the price tier of every club
type TierJob struct {
	service   Service
	config    *JobConfig
	log       *logger.Logger
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	mu        sync.Mutex
	started   bool
	lastRun   time.Time
	lastStats *RecomputeSummary
}

type JobConfig struct {
	Interval     time.Duration
	RunOnStartup bool
	Timeout      time.Duration
}

func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		Interval:     6 * time.Hour,
		RunOnStartup: true,
		Timeout:      10 * time.Minute,
	}
}

func NewTierJob(service Service, config *JobConfig) *TierJob {
	if config == nil {
		config = DefaultJobConfig()
	}
	if config.Interval <= 0 {
		config.Interval = DefaultJobConfig().Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultJobConfig().Timeout
	}

	return &TierJob{
		service: service,
		config:  config,
		log:     logger.GetDefault(),
		done:    make(chan struct{}),
	}
}

func (j *TierJob) Start(ctx context.Context) {
	j.log.InfoWithContext(ctx, "Starting price tier job", map[string]interface{}{
		"interval":       j.config.Interval.String(),
		"run_on_startup": j.config.RunOnStartup,
	})

	j.mu.Lock()
	j.started = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.loop(ctx)
}

// Stop ends the loop and waits for a running recompute to return
func (j *TierJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
	})
	j.wg.Wait()

	j.mu.Lock()
	j.started = false
	j.mu.Unlock()
	j.log.Info("Price tier job stopped")
}

func (j *TierJob) loop(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	if j.config.RunOnStartup {
		j.runOnce(ctx)
	}

	for {
		select {
		case <-ticker.C:
			j.runOnce(ctx)
		case <-j.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (j *TierJob) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	start := time.Now()
	summary, err := j.service.RecomputeAll(runCtx)
	if err != nil {
		j.log.ErrorWithContext(ctx, "Price tier recompute run failed", err, nil)
	}

	j.mu.Lock()
	j.lastRun = start
	if summary != nil {
		j.lastStats = summary
	}
	j.mu.Unlock()

	if summary != nil {
		j.log.InfoWithContext(ctx, "Price tier recompute run finished", map[string]interface{}{
			"processed": summary.Processed,
			"verified":  summary.Verified,
			"changed":   summary.Changed,
			"failed":    len(summary.Failed),
			"duration":  time.Since(start).String(),
		})
	}
}

// Status reports the job configuration and the last run
func (j *TierJob) Status() map[string]interface{} {
	j.mu.Lock()
	defer j.mu.Unlock()

	state := "idle"
	if j.started {
		state = "running"
	}
	status := map[string]interface{}{
		"interval": j.config.Interval.String(),
		"status":   state,
	}
	if !j.lastRun.IsZero() {
		status["last_run"] = j.lastRun.UTC().Format(time.RFC3339)
	}
	if j.lastStats != nil {
		status["last_summary"] = *j.lastStats
	}
	return status
}
