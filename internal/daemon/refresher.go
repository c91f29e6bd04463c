package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRefreshInterval matches the display's five-minute refresh cadence
const DefaultRefreshInterval = 5 * time.Minute

// Target is refreshed on every tick
type Target interface {
	Refresh(ctx context.Context) error
}

// Refresher periodically refreshes a target on a cron schedule.
// A failed refresh is logged and the next tick runs regardless.
type Refresher struct {
	target   Target
	interval time.Duration
	onUpdate func(error)
	logger   *zap.Logger

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc

	// mu orders update callbacks against Stop
	mu          sync.Mutex
	started     bool
	stopped     bool
	lastRefresh time.Time
	lastErr     error
}

// NewRefresher creates a refresher. onUpdate receives the result of every
// refresh, nil on success, and may be nil.
func NewRefresher(target Target, interval time.Duration, onUpdate func(error), logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Refresher{
		target:   target,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logger,
		cron: cron.New(
			cron.WithLogger(cronLogger{logger.Sugar()}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the refresh job
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return errors.New("refresher already stopped")
	}
	if r.started {
		return nil
	}

	schedule := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return fmt.Errorf("failed to schedule refresh %q: %w", schedule, err)
	}
	r.cron.Start()
	r.started = true

	r.logger.Info("Refresher started", zap.Duration("interval", r.interval))
	return nil
}

// RefreshNow runs one refresh synchronously
func (r *Refresher) RefreshNow() error {
	return r.refresh()
}

func (r *Refresher) run() {
	if err := r.refresh(); err != nil {
		r.logger.Warn("Scheduled refresh failed, keeping cached bookings", zap.Error(err))
	}
}

func (r *Refresher) refresh() error {
	started := time.Now()
	err := r.target.Refresh(r.ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return context.Canceled
	}

	r.lastRefresh = time.Now()
	r.lastErr = err
	if err == nil {
		r.logger.Debug("Refresh completed", zap.Duration("took", time.Since(started)))
	}
	if r.onUpdate != nil {
		r.onUpdate(err)
	}
	return err
}

// Stop cancels in-flight refreshes and unschedules the job. No update
// callback fires once Stop has returned. The returned context is done
// when running jobs have finished.
func (r *Refresher) Stop() context.Context {
	r.cancel()

	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	ctx := r.cron.Stop()
	r.logger.Info("Refresher stopped")
	return ctx
}

// Status returns the time and result of the last refresh
func (r *Refresher) Status() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRefresh, r.lastErr
}

// Interval returns the refresh interval
func (r *Refresher) Interval() time.Duration {
	return r.interval
}

// cronLogger routes cron's own logging into zap
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
