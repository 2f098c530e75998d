package cron

import (
	"context"
	"sync"
	"time"

	"tailortalk/services/session"

	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically drops expired sessions from a store.
type Sweeper struct {
	store    session.Store
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	runner  *cronlib.Cron
	running bool
}

func NewSweeper(store session.Store, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = session.DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{store: store, interval: interval, logger: logger, now: time.Now}
}

// Start schedules the sweep in the background. Calling it twice is a no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	s.runner = cronlib.New()
	s.runner.Schedule(cronlib.Every(s.interval), cronlib.FuncJob(func() {
		s.RunOnce(context.Background())
	}))
	s.runner.Start()
	s.running = true
	s.logger.Info("Session sweeper started", zap.Duration("interval", s.interval))
}

// Stop halts scheduling and waits for a sweep in progress to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	<-s.runner.Stop().Done()
	s.running = false
	s.logger.Info("Session sweeper stopped")
}

// RunOnce sweeps immediately and returns the number of sessions removed.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	removed, err := s.store.Sweep(ctx, s.now())
	if err != nil {
		s.logger.Error("Session sweep failed", zap.Error(err))
		return 0
	}
	if removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int("count", removed))
	}
	return removed
}
