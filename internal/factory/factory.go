package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/candyledger/internal/config"
	"github.com/mcoot/candyledger/internal/dependencies/clock"
	"github.com/mcoot/candyledger/internal/dependencies/random"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/services/challenge"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/services/economy"
	"github.com/mcoot/candyledger/internal/services/effects"
	"github.com/mcoot/candyledger/internal/services/jobs"
	"github.com/mcoot/candyledger/internal/services/persist"
	"github.com/mcoot/candyledger/internal/services/resolution"
	"github.com/mcoot/candyledger/internal/storage"
	"github.com/mcoot/candyledger/internal/storage/file"
	"github.com/mcoot/candyledger/internal/storage/memory"
	redisstorage "github.com/mcoot/candyledger/internal/storage/redis"
	"github.com/mcoot/candyledger/internal/storage/sqlite"
	"github.com/mcoot/candyledger/internal/store"
	"github.com/mcoot/candyledger/internal/transport"
)

// App contains all wired application components
type App struct {
	Config config.Config
	Tuning config.Tuning

	// Storage
	Backend storage.Backend
	Store   *store.Store
	Persist *persist.Scheduler

	// External dependencies
	Clock   clock.Clock
	Random  random.Random
	Gateway transport.Gateway
	Metrics *metrics.Metrics

	// Services
	Cooldowns  *cooldown.Ledger
	Effects    *effects.Tracker
	Engine     *resolution.Engine
	Challenges *challenge.Service
	Controller *economy.Controller
	Jobs       *jobs.Runner

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Env is the process configuration
	Env config.Config
	// Tuning holds the game balance. If zero value, the tuning file named by
	// Env is loaded over the defaults.
	Tuning *config.Tuning
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired and the last
// saved state restored
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	tuning, err := resolveTuning(cfg)
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(cfg.Env, logger)
	if err != nil {
		return nil, err
	}

	var gateway transport.Gateway = transport.Nop{}
	if cfg.Env.GatewayURL != "" {
		gateway = transport.NewHTTPGateway(cfg.Env.GatewayURL, cfg.Env.GatewayToken)
	} else {
		logger.Warn("no gateway configured, notifications and mutes are dropped")
	}

	app, err := newWithDependencies(cfg.Env, tuning, backend, gateway, clock.New(), random.New(), logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	if err := app.Restore(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}
	return app, nil
}

func resolveTuning(cfg Config) (config.Tuning, error) {
	if cfg.Tuning != nil {
		return *cfg.Tuning, nil
	}
	tuning, err := config.LoadTuning(cfg.Env.TuningPath)
	if err != nil {
		return tuning, fmt.Errorf("load tuning: %w", err)
	}
	return tuning, nil
}

// openBackend creates the storage backend named by the configuration
func openBackend(env config.Config, logger *slog.Logger) (storage.Backend, error) {
	switch env.StorageType {
	case config.StorageTypeMemory, "":
		return memory.New(), nil
	case config.StorageTypeFile:
		return file.New(file.Config{Dir: env.DataDir, Compress: env.Compress}, logger)
	case config.StorageTypeSQLite:
		return sqlite.New(env.SQLitePath, logger)
	case config.StorageTypeRedis:
		if env.RedisURL == "" {
			return nil, errors.New("redis URL required when storage type is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = env.RedisURL
		return redisstorage.New(redisCfg, logger)
	default:
		return nil, fmt.Errorf("invalid storage type %q", env.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	env config.Config,
	tuning config.Tuning,
	backend storage.Backend,
	gateway transport.Gateway,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) (*App, error) {
	loc := env.Location()
	m := metrics.New()

	st := store.New(store.Config{
		StartingBalance: tuning.StartingBalance,
		MaxClanSize:     tuning.Clan.MaxSize,
		NameMaxRunes:    tuning.Clan.NameMaxRunes,
		Location:        loc,
	}, clk, logger)

	flushDelay := env.FlushDelay
	if flushDelay <= 0 {
		flushDelay = config.DefaultFlushDelay
	}
	scheduler := persist.New(st, backend, clk, flushDelay, m, logger)
	st.SetChangeHook(scheduler.RequestFlush)

	cooldowns := cooldown.New(clk)
	fx := effects.New(effects.Config{
		RaidMultiplier:  tuning.Events.RaidMultiplier,
		FinalEventAt:    tuning.Events.FinalEventAt,
		FinalMultiplier: tuning.Events.FinalMultiplier,
	}, tuning.Catalog)

	engine := resolution.New(resolution.Config{
		StealBase:     tuning.Steal.Base,
		StealCooldown: tuning.Steal.Cooldown,
		StealTimeout:  tuning.Steal.ChoiceTimeout,
		MuteDuration:  tuning.Steal.MuteDuration,
		DuelAnte:      tuning.Duel.Ante,
		DuelTieBonus:  tuning.Duel.TieBonus,
		DuelTimeout:   tuning.Duel.ChoiceTimeout,
		WarCost:       tuning.Clan.WarCost,
		WarCooldown:   tuning.Clan.WarCooldown,
		RaidBase:      tuning.Clan.RaidBase,
		SuccessFactor: tuning.Clan.SuccessFactor,
		Retention:     resolution.DefaultConfig().Retention,
	}, st, cooldowns, fx, gateway, clk, rnd, m, logger)

	challenges := challenge.New(challenge.Config{
		StealTarget: tuning.Challenges.StealTarget,
		StealReward: tuning.Challenges.StealReward,
		GiveTarget:  tuning.Challenges.GiveTarget,
		GiveReward:  tuning.Challenges.GiveReward,
		BuyTarget:   tuning.Challenges.BuyTarget,
		BuyLicorice: tuning.Challenges.BuyLicorice,
	}, st, m, logger)

	controller := economy.NewController(economy.Config{
		DailyReward:       tuning.Daily.Reward,
		DailyCooldown:     tuning.Daily.Cooldown,
		LeaderboardSize:   tuning.LeaderboardSize,
		ClanCreateCost:    tuning.Clan.CreateCost,
		LicoricePrice:     tuning.Shop.LicoricePrice,
		ClanLicoricePrice: tuning.Shop.ClanLicoricePrice,
		Catalog:           tuning.Catalog,
	}, st, engine, challenges, fx, cooldowns, gateway, clk, m, logger)

	runner, err := jobs.New(jobs.Config{
		RaidSchedule:      tuning.Events.RaidSchedule,
		RaidDuration:      tuning.Events.RaidDuration,
		SweepSchedule:     env.SweepSchedule,
		CooldownRetention: max(tuning.Steal.Cooldown, tuning.Clan.WarCooldown),
		Location:          loc,
	}, st, fx, engine, cooldowns, gateway, clk, m, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:     env,
		Tuning:     tuning,
		Backend:    backend,
		Store:      st,
		Persist:    scheduler,
		Clock:      clk,
		Random:     rnd,
		Gateway:    gateway,
		Metrics:    m,
		Cooldowns:  cooldowns,
		Effects:    fx,
		Engine:     engine,
		Challenges: challenges,
		Controller: controller,
		Jobs:       runner,
		logger:     logger,
	}, nil
}

// Restore loads the last saved snapshot into the store
func (a *App) Restore(ctx context.Context) error {
	snap, err := a.Backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	a.Store.Restore(snap)
	return nil
}

// Close performs a final flush and releases the backend
func (a *App) Close(ctx context.Context) error {
	flushErr := a.Persist.Close(ctx)
	if flushErr != nil {
		a.logger.Error("final flush failed", slog.String("error", flushErr.Error()))
	}
	return errors.Join(flushErr, a.Backend.Close())
}
