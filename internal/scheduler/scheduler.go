package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fomenta-dev/fomenta/internal/services"
)

const staleMaxAgeDays = 30

// Scheduler drives the two housekeeping sweeps: once at start, then on a
// fixed daily interval. The sweeps themselves take "now" as a parameter, so
// any external trigger could run them instead.
type Scheduler struct {
	engine   *services.NotificationEngine
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(engine *services.NotificationEngine) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		engine:   engine,
		interval: 24 * time.Hour,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the sweeps immediately, then once per interval until Stop.
func (s *Scheduler) Start() {
	log.Println("Starting sweep scheduler...")

	go func() {
		s.runSweeps()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runSweeps()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	log.Println("Stopping sweep scheduler...")
	s.cancel()
}

func (s *Scheduler) runSweeps() {
	now := time.Now()

	if err := s.engine.SweepUpcoming(now); err != nil {
		log.Printf("Upcoming-deadline sweep failed: %v", err)
	}

	if err := s.engine.SweepStale(now, staleMaxAgeDays); err != nil {
		log.Printf("Stale-project sweep failed: %v", err)
	}
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler.
func Initialize(engine *services.NotificationEngine) {
	globalScheduler = NewScheduler(engine)
	globalScheduler.Start()
}

// Shutdown stops the global scheduler.
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}
