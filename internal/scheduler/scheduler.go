package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Reporter is the dependency that actually does the work.
// The scheduler will call Report on a fixed interval.
type Reporter interface {
	Report(ctx context.Context) error
}

// SchedulerService exposes a small control surface for the scheduler.
// Start/Stop are synchronous controls, and IsRunning reports
// whether the scheduler is currently accepting ticks.
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// DefaultInterval is used when no custom interval is provided.
const DefaultInterval = 1 * time.Minute

// DefaultReportTimeout is how long we allow a single report to run
// before cancelling it via context timeout.
const DefaultReportTimeout = 10 * time.Second

// controlTimeout is how long we wait for the control loop to
// accept a Start/Stop command and acknowledge it. This protects
// callers from hanging forever if the loop is not running.
const controlTimeout = 2 * time.Second

// controlOp represents the kind of command sent into the internal control loop.
type controlOp int

const (
	opStart controlOp = iota
	opStop
	opStatus
)

// controlMsg is sent over the ctrl channel to drive the scheduler's state.
type controlMsg struct {
	op   controlOp
	resp chan bool // used by callers to get a synchronous answer
}

// schedulerService owns the internal state and runs the control loop.
// All mutable state lives in the loop goroutine, so we don't need locks.
type schedulerService struct {
	reporter      Reporter
	interval      time.Duration
	reportTimeout time.Duration
	logger        *slog.Logger
	ctrl          chan controlMsg
}

// NewSchedulerService creates a new scheduler with the given interval
// and report timeout. If any of them is <= 0, sane defaults are used instead.
func NewSchedulerService(
	rep Reporter,
	interval time.Duration,
	reportTimeout time.Duration,
	logger *slog.Logger,
) SchedulerService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if reportTimeout <= 0 {
		reportTimeout = DefaultReportTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &schedulerService{
		reporter:      rep,
		interval:      interval,
		reportTimeout: reportTimeout,
		logger:        logger,
		ctrl:          make(chan controlMsg),
	}

	// The control loop is started in its own goroutine and lives
	// for the lifetime of the process.
	go s.loop()

	return s
}

// Start tells the scheduler to begin processing ticks.
// It blocks until the internal loop has acknowledged the state change,
// or returns an error if the control loop does not respond in time.
func (s *schedulerService) Start() error {
	resp := make(chan bool)
	msg := controlMsg{op: opStart, resp: resp}

	// First: make sure the control loop is actually listening
	// on the ctrl channel.
	select {
	case s.ctrl <- msg:
		// sent ok
	case <-time.After(controlTimeout):
		return fmt.Errorf("scheduler start: control loop not responding")
	}

	// Then: wait for the loop to acknowledge the state change.
	select {
	case <-resp:
		return nil
	case <-time.After(controlTimeout):
		return fmt.Errorf("scheduler start: acknowledgement timeout")
	}
}

// Stop tells the scheduler to stop accepting new ticks.
// If a report is currently running, Stop will wait until it finishes
// (or times out) before returning. If the control loop does not
// respond, Stop returns an error instead of blocking forever.
func (s *schedulerService) Stop() error {
	resp := make(chan bool)
	msg := controlMsg{op: opStop, resp: resp}

	// Try to send the Stop command to the control loop.
	select {
	case s.ctrl <- msg:
		// sent ok
	case <-time.After(controlTimeout):
		return fmt.Errorf("scheduler stop: control loop not responding")
	}

	// Wait for the loop to confirm that it has stopped.
	select {
	case <-resp:
		return nil
	case <-time.After(controlTimeout):
		return fmt.Errorf("scheduler stop: acknowledgement timeout")
	}
}

// IsRunning reports whether the scheduler is currently in "running" mode.
// It does not mean that a report is actively executing, only that new ticks
// will be processed when the timer fires.
func (s *schedulerService) IsRunning() bool {
	resp := make(chan bool)
	s.ctrl <- controlMsg{op: opStatus, resp: resp}
	return <-resp
}

// loop is the heart of the scheduler. It owns all mutable state
// and reacts to either control messages or timer ticks.
func (s *schedulerService) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// running: whether we should accept new ticks
	// inReport: whether a report is currently executing
	running := false
	inReport := false

	// pendingStop is a response channel to be completed once
	// the current report finishes, if Stop was called mid-report.
	var pendingStop chan bool

	for {
		select {
		case msg := <-s.ctrl:
			switch msg.op {
			case opStart:
				if !running {
					s.logger.Info("scheduler started",
						"interval", s.interval.String(),
						"report_timeout", s.reportTimeout.String())
				}
				running = true
				msg.resp <- true

			case opStop:
				// If we're already idle and not mid-report,
				// just acknowledge the Stop immediately.
				if !running && !inReport {
					msg.resp <- true
					continue
				}

				// Mark as not running so future ticks are ignored.
				running = false

				if inReport {
					// Defer the response until the report completes.
					pendingStop = msg.resp
				} else {
					// No active report, we can safely stop now.
					s.logger.Info("scheduler stopped")
					msg.resp <- true
				}

			case opStatus:
				msg.resp <- running
			}

		case <-ticker.C:
			// If we're not running or already reporting,
			// ignore this tick.
			if !running || inReport {
				continue
			}

			inReport = true

			// Time-bound the report so Stop doesn't hang forever
			// if Report never returns.
			ctx, cancel := context.WithTimeout(context.Background(), s.reportTimeout)

			err := s.reporter.Report(ctx)
			cancel()

			if err != nil {
				s.logger.Error("scheduled report failed", "error", err)
			}

			inReport = false

			// If a Stop was requested while we were mid-report,
			// complete it now and clear the pending channel.
			if pendingStop != nil {
				pendingStop <- true
				pendingStop = nil
				s.logger.Info("scheduler stopped")
			}
		}
	}
}
