package tracker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Rtur2003/Kognita/internal/config"
	"github.com/Rtur2003/Kognita/internal/probe"
)

// Sampler runs the polling loop: every poll interval it classifies the
// current moment as idle or active, feeds the state machine, and hands
// closed sessions to the sink.
type Sampler struct {
	probe   probe.Probe
	monitor *Monitor
	sink    Sink
	cfg     func() config.Config
	log     *slog.Logger

	machine *Machine
	current atomic.Value // string: in-flight process, read by the goal evaluator
}

// NewSampler wires a sampler. cfg is called at the start of every pass so
// settings changes take effect without a restart.
func NewSampler(p probe.Probe, monitor *Monitor, sink Sink, cfg func() config.Config, log *slog.Logger) *Sampler {
	s := &Sampler{
		probe:   p,
		monitor: monitor,
		sink:    sink,
		cfg:     cfg,
		log:     log,
		machine: NewMachine(),
	}
	s.current.Store("")
	return s
}

// CurrentProcess returns the process name of the in-flight session.
// Safe for concurrent use; the goal evaluator calls this for block goals.
func (s *Sampler) CurrentProcess() string {
	v, _ := s.current.Load().(string)
	return v
}

// Run polls until ctx is cancelled, then force-closes and persists the
// in-flight session before returning. This final flush is the shutdown
// ordering guarantee: Run does not return until it has been attempted.
func (s *Sampler) Run(ctx context.Context) {
	s.log.Info("tracker started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.flush(time.Now())
			s.log.Info("tracker stopped")
			return
		case <-timer.C:
		}

		cfg := s.cfg()
		s.step(time.Now(), cfg)
		timer.Reset(cfg.PollInterval())
	}
}

// step takes one sample at now and persists any session it closes.
func (s *Sampler) step(now time.Time, cfg config.Config) {
	sample := s.sample(now, cfg.IdleThreshold())

	if closed := s.machine.Advance(sample); closed != nil {
		s.persist(*closed, cfg.PollInterval())
	}
	s.current.Store(s.machine.InFlight())
}

// sample classifies the current moment. Idle wins over whatever is
// focused; probe failures degrade to the unknown sentinel, never an
// aborted pass.
func (s *Sampler) sample(now time.Time, idleThreshold time.Duration) Sample {
	if age, err := s.probe.InputAge(); err == nil {
		s.monitor.Touch(now.Add(-age))
	}

	if s.monitor.Idle(now, idleThreshold) {
		return Sample{Process: probe.ProcessIdle, Title: probe.TitleIdle, Time: now}
	}

	process, title, err := s.probe.Foreground()
	if err != nil {
		return Sample{Process: probe.ProcessUnknown, Title: probe.TitleUnknown, Time: now}
	}
	return Sample{Process: process, Title: title, Time: now}
}

// flush closes the in-flight session at now and persists it under the
// same filters as a normal boundary.
func (s *Sampler) flush(now time.Time) {
	if closed := s.machine.Flush(now); closed != nil {
		s.persist(*closed, s.cfg().PollInterval())
	}
	s.current.Store("")
}

// persist writes a closed session unless it is filtered out: sentinel
// processes never reach the store, and sessions shorter than the poll
// interval are dropped to keep rapid alt-tabbing out of the log.
func (s *Sampler) persist(closed Session, minDuration time.Duration) {
	if !Persistable(closed, minDuration) {
		return
	}
	if err := s.sink.AddSession(closed); err != nil {
		s.log.Warn("session not persisted", "process", closed.ProcessName, "error", err)
		return
	}
	s.log.Debug("session logged",
		"process", closed.ProcessName,
		"duration", closed.Duration(),
	)
}

// Persistable reports whether a closed session passes the persistence
// filters from the data model: non-sentinel process and duration of at
// least minDuration.
func Persistable(s Session, minDuration time.Duration) bool {
	if s.ProcessName == probe.ProcessIdle || s.ProcessName == probe.ProcessUnknown {
		return false
	}
	return s.Duration() >= minDuration
}
