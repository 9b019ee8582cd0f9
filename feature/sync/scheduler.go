package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"time"

	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned when Start is called on a running scheduler.
var ErrAlreadyRunning = errors.New("scheduler is already running")

// Runner executes one reconciliation pass of the given kind.
type Runner func(ctx context.Context, kind JobKind) []Result

type job struct {
	kind        JobKind
	interval    time.Duration
	running     bool
	startedAt   time.Time
	lastRun     time.Time
	lastSuccess int
	lastErrors  int
}

// Scheduler drives periodic reconciliation from a single control goroutine.
// Every job kind runs once immediately on start; afterwards a job runs again
// when its cadence has elapsed and its previous run finished. Stop never
// interrupts an in-flight pass.
type Scheduler struct {
	mu      stdsync.Mutex
	jobs    []*job
	runner  Runner
	tick    time.Duration
	started bool
	stopCh  chan struct{}
	logger  *zap.Logger
}

// NewScheduler creates a scheduler with one job per kind. Categories run
// first so product passes find their categories in place.
func NewScheduler(cfg Config, runner Runner, logger *zap.Logger) *Scheduler {
	tick := time.Duration(cfg.TickSeconds) * time.Second
	if tick <= 0 {
		tick = time.Minute
	}
	minutes := func(m, fallback int) time.Duration {
		if m <= 0 {
			m = fallback
		}
		return time.Duration(m) * time.Minute
	}
	return &Scheduler{
		jobs: []*job{
			{kind: JobCategories, interval: minutes(cfg.CategoriesIntervalMinutes, 60)},
			{kind: JobProducts, interval: minutes(cfg.ProductsIntervalMinutes, 30)},
			{kind: JobStockPrices, interval: minutes(cfg.StockPricesIntervalMinutes, 15)},
		},
		runner: runner,
		tick:   tick,
		logger: logger,
	}
}

// Start launches the control loop. It fails when the scheduler is already
// running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.started = true
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.mu.Unlock()

	go s.loop(ctx, stop)
	s.logger.Info("scheduler started")
	return nil
}

// Stop halts scheduling. An in-flight pass finishes on its own.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
	s.logger.Info("scheduler stopped")
}

// Running reports whether the scheduler is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Status returns a snapshot of every job.
func (s *Scheduler) Status() []SyncRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := make([]SyncRun, 0, len(s.jobs))
	for _, j := range s.jobs {
		runs = append(runs, SyncRun{
			Kind:        j.kind,
			Running:     j.running,
			StartedAt:   j.startedAt,
			LastRun:     j.lastRun,
			LastSuccess: j.lastSuccess,
			LastErrors:  j.lastErrors,
		})
	}
	return runs
}

func (s *Scheduler) loop(ctx context.Context, stop <-chan struct{}) {
	// Run every kind once before entering the periodic loop.
	for _, j := range s.jobs {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		default:
		}
		s.runJob(ctx, j)
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, j := range s.jobs {
				if s.due(j) {
					s.runJob(ctx, j)
				}
			}
		}
	}
}

func (s *Scheduler) due(j *job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !j.running && time.Since(j.lastRun) >= j.interval
}

func (s *Scheduler) runJob(ctx context.Context, j *job) {
	s.mu.Lock()
	if j.running {
		s.mu.Unlock()
		return
	}
	j.running = true
	j.startedAt = time.Now()
	s.mu.Unlock()

	results := s.runner(ctx, j.kind)

	var succeeded, failed int
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}

	s.mu.Lock()
	j.running = false
	j.lastRun = time.Now()
	j.lastSuccess = succeeded
	j.lastErrors = failed
	s.mu.Unlock()

	s.logger.Info("job finished",
		zap.String("kind", string(j.kind)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed))
}
