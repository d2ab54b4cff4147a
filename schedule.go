// FILE: dobrawek/drlogger/schedule.go
package drlogger

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Cleaner runs a retention pass
type Cleaner interface {
	Cleanup()
}

// CleanupScheduler runs retention on a cron schedule in addition to the pass made on start
type CleanupScheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	spec    string
	running bool
}

// SchedulerOption configures a CleanupScheduler
type SchedulerOption func(*schedulerOptions)

type schedulerOptions struct {
	location *time.Location
}

// WithLocation sets the time zone used to interpret the schedule
func WithLocation(loc *time.Location) SchedulerOption {
	return func(o *schedulerOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// NewCleanupScheduler creates a scheduler calling target.Cleanup on spec.
// spec uses the standard five-field cron syntax or a descriptor such as "@daily" or "@every 1h".
func NewCleanupScheduler(target Cleaner, spec string, opts ...SchedulerOption) (*CleanupScheduler, error) {
	if target == nil {
		return nil, fmtErrorf("cleanup target cannot be nil")
	}

	options := &schedulerOptions{location: time.Local}
	for _, opt := range opts {
		opt(options)
	}

	c := cron.New(
		cron.WithLocation(options.location),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
	)
	if _, err := c.AddFunc(spec, target.Cleanup); err != nil {
		return nil, fmtErrorf("invalid cleanup schedule '%s': %w", spec, err)
	}

	return &CleanupScheduler{cron: c, spec: spec}, nil
}

// Spec returns the schedule expression
func (s *CleanupScheduler) Spec() string {
	return s.spec
}

// Start begins running the schedule. Starting a running scheduler is a no-op.
func (s *CleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.cron.Start()
	s.running = true
	return nil
}

// Stop halts the schedule and waits for a running pass to finish
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	ctx := s.cron.Stop()
	s.mu.Unlock()
	<-ctx.Done()
}

// CleanupSchedule returns the current retention schedule, or "" when none is set
func (d *DailyFileListener) CleanupSchedule() string {
	d.schedMu.Lock()
	defer d.schedMu.Unlock()
	if d.scheduler == nil {
		return ""
	}
	return d.scheduler.Spec()
}

// SetCleanupSchedule replaces the periodic retention schedule. An empty spec
// removes it. On a started listener the new schedule starts immediately.
func (d *DailyFileListener) SetCleanupSchedule(spec string) error {
	d.schedMu.Lock()
	defer d.schedMu.Unlock()

	if d.scheduler != nil && d.scheduler.Spec() == spec {
		return nil
	}

	var next *CleanupScheduler
	if spec != "" {
		var err error
		if next, err = NewCleanupScheduler(d, spec); err != nil {
			return err
		}
	}

	if d.scheduler != nil {
		d.scheduler.Stop()
	}
	d.scheduler = next

	if next != nil && d.running.Load() {
		return next.Start()
	}
	return nil
}
