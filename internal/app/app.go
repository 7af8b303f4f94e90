// Package app wires the daemon: the sampler plus the periodic goal,
// achievement and retention loops, supervised under one context.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Rtur2003/Kognita/internal/achievements"
	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/config"
	"github.com/Rtur2003/Kognita/internal/goals"
	"github.com/Rtur2003/Kognita/internal/notify"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/Rtur2003/Kognita/internal/retention"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/Rtur2003/Kognita/internal/tracker"
)

const (
	achievementStartDelay = time.Minute
	retentionInterval     = 24 * time.Hour
)

// App owns the background loops of the tracking daemon.
type App struct {
	cfg          func() config.Config
	sampler      *tracker.Sampler
	goals        *goals.Evaluator
	achievements *achievements.Evaluator
	retention    *retention.Sweeper
	log          *slog.Logger
}

// New assembles the daemon from its parts. cfg is consulted at the top
// of every loop pass so settings changes apply without a restart.
func New(p probe.Probe, st *store.Store, cfg func() config.Config, log *slog.Logger) *App {
	an := analyzer.New(st, log)
	notifier := notify.NewLogNotifier(log)
	sampler := tracker.NewSampler(p, tracker.NewMonitor(time.Now()), st, cfg, log)

	snapshot := cfg()
	return &App{
		cfg:          cfg,
		sampler:      sampler,
		goals:        goals.New(st, an, notifier, sampler.CurrentProcess, snapshot.BlockCooldown(), log),
		achievements: achievements.New(st, notifier, log),
		retention:    retention.New(st, log),
		log:          log,
	}
}

// Run starts all loops and blocks until ctx is cancelled. It returns
// only after the sampler has flushed its in-flight session, so shutdown
// never loses the session that was open when the signal arrived. A
// failing pass in any loop is logged and the loop continues.
func (a *App) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sampler.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.goalLoop(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.achievementLoop(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.retentionLoop(ctx)
	}()

	wg.Wait()
	a.log.Info("daemon stopped")
}

func (a *App) goalLoop(ctx context.Context) {
	for {
		cfg := a.cfg()
		if !sleep(ctx, cfg.GoalCheckInterval()) {
			return
		}
		if cfg.Notifications.GoalsEnabled {
			a.goals.Evaluate(time.Now())
		}
	}
}

func (a *App) achievementLoop(ctx context.Context) {
	if !sleep(ctx, achievementStartDelay) {
		return
	}
	for {
		if a.cfg().Notifications.AchievementsEnabled {
			a.achievements.Evaluate(time.Now())
		}
		if !sleep(ctx, a.cfg().AchievementCheckInterval()) {
			return
		}
	}
}

func (a *App) retentionLoop(ctx context.Context) {
	for {
		a.retention.Sweep(time.Now(), a.cfg().DataRetentionDays)
		if !sleep(ctx, retentionInterval) {
			return
		}
	}
}

// sleep waits for d or until ctx is cancelled; false means cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
