package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mcoot/candyledger/internal/dependencies/clock"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/services/effects"
	"github.com/mcoot/candyledger/internal/services/resolution"
	"github.com/mcoot/candyledger/internal/store"
	"github.com/mcoot/candyledger/internal/transport"
)

// Announcement texts sent to chats
const (
	RaidStartText = "RAID! Double candy for %d minutes!"
	RaidEndText   = "The raid is over!"
)

// Config holds the job schedules
type Config struct {
	RaidSchedule  string
	RaidDuration  time.Duration
	SweepSchedule string
	// Cooldown stamps older than this are dropped by the sweep
	CooldownRetention time.Duration
	Location          *time.Location
}

// Runner runs the periodic chat raids and the housekeeping sweep
type Runner struct {
	cfg       Config
	cron      *cron.Cron
	store     *store.Store
	effects   *effects.Tracker
	engine    *resolution.Engine
	cooldowns *cooldown.Ledger
	gateway   transport.Gateway
	clock     clock.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu     sync.Mutex
	timers map[model.ChatID]clock.Timer
}

// New creates a Runner and registers its jobs. Jobs start with Run.
func New(
	cfg Config,
	st *store.Store,
	fx *effects.Tracker,
	engine *resolution.Engine,
	cooldowns *cooldown.Ledger,
	gateway transport.Gateway,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Runner, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	logger = logger.With(slog.String("component", "jobs"))
	cl := cronLogger{logger: logger}

	r := &Runner{
		cfg: cfg,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		store:     st,
		effects:   fx,
		engine:    engine,
		cooldowns: cooldowns,
		gateway:   gateway,
		clock:     clk,
		metrics:   m,
		logger:    logger,
		timers:    make(map[model.ChatID]clock.Timer),
	}

	if cfg.RaidSchedule != "" {
		if _, err := r.cron.AddFunc(cfg.RaidSchedule, func() { r.StartRaids(context.Background()) }); err != nil {
			return nil, fmt.Errorf("raid schedule %q: %w", cfg.RaidSchedule, err)
		}
	}
	if cfg.SweepSchedule != "" {
		if _, err := r.cron.AddFunc(cfg.SweepSchedule, func() { r.Sweep(context.Background()) }); err != nil {
			return nil, fmt.Errorf("sweep schedule %q: %w", cfg.SweepSchedule, err)
		}
	}
	return r, nil
}

// Run starts the scheduler and blocks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("job scheduler started", slog.Int("jobs", len(r.cron.Entries())))
	r.cron.Start()
	<-ctx.Done()

	<-r.cron.Stop().Done()
	r.mu.Lock()
	for chat, t := range r.timers {
		t.Stop()
		delete(r.timers, chat)
	}
	r.mu.Unlock()
	r.logger.Info("job scheduler stopped")
	return nil
}

// StartRaids opens a raid window in every registered chat and announces it.
// Returns the number of chats.
func (r *Runner) StartRaids(ctx context.Context) int {
	chats := r.store.Chats()
	now := r.clock.Now()
	for _, chat := range chats {
		r.startRaid(ctx, chat, now)
	}
	if len(chats) > 0 {
		r.logger.Info("raid windows opened",
			slog.Int("chats", len(chats)),
			slog.Duration("duration", r.cfg.RaidDuration))
	}
	return len(chats)
}

func (r *Runner) startRaid(ctx context.Context, chat model.ChatID, now time.Time) {
	r.effects.StartRaidWindow(chat, now, r.cfg.RaidDuration)
	r.metrics.RaidWindows.Inc()

	r.mu.Lock()
	if t, ok := r.timers[chat]; ok {
		t.Stop()
	}
	r.timers[chat] = r.clock.AfterFunc(r.cfg.RaidDuration, func() {
		r.endRaid(context.Background(), chat)
	})
	r.mu.Unlock()

	text := fmt.Sprintf(RaidStartText, int(r.cfg.RaidDuration.Minutes()))
	r.announce(ctx, chat, text)
}

func (r *Runner) endRaid(ctx context.Context, chat model.ChatID) {
	// A later raid may have extended the window
	if r.effects.RaidActive(chat, r.clock.Now()) {
		return
	}
	r.mu.Lock()
	delete(r.timers, chat)
	r.mu.Unlock()

	if r.effects.EndRaidWindow(chat) {
		r.announce(ctx, chat, RaidEndText)
	}
}

func (r *Runner) announce(ctx context.Context, chat model.ChatID, text string) {
	if err := r.gateway.SendChatMessage(ctx, chat, text); err != nil {
		r.logger.Warn("announcement failed",
			slog.String("chat", string(chat)),
			slog.String("error", err.Error()))
	}
}

// Sweep expires stale pending decisions and prunes old cooldown stamps
func (r *Runner) Sweep(ctx context.Context) {
	expired := r.engine.SweepExpired(ctx)
	pruned := r.cooldowns.Prune(r.cfg.CooldownRetention)
	if expired > 0 || pruned > 0 {
		r.logger.Debug("sweep finished",
			slog.Int("expired", expired),
			slog.Int("cooldowns_pruned", pruned))
	}
}

// cronLogger adapts slog to the cron logger interface
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, slog.String("error", err.Error()))...)
}
