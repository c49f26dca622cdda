package economy

import (
	"log/slog"
	"time"

	"github.com/mcoot/candyledger/internal/dependencies/clock"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/challenge"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/services/effects"
	"github.com/mcoot/candyledger/internal/services/resolution"
	"github.com/mcoot/candyledger/internal/store"
	"github.com/mcoot/candyledger/internal/transport"
)

// Actor is the already-authenticated caller of a command
type Actor struct {
	ID         model.PlayerID
	Chat       model.ChatID
	Privileged bool
}

// Config holds the prices and rewards of the plain economy commands
type Config struct {
	DailyReward       int64
	DailyCooldown     time.Duration
	LeaderboardSize   int
	ClanCreateCost    int64
	LicoricePrice     int64
	ClanLicoricePrice int64
	Catalog           model.Catalog
}

// Controller exposes one operation per user-facing command
type Controller struct {
	cfg        Config
	store      *store.Store
	engine     *resolution.Engine
	challenges *challenge.Service
	effects    *effects.Tracker
	cooldowns  *cooldown.Ledger
	gateway    transport.Gateway
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewController creates a new economy Controller
func NewController(
	cfg Config,
	st *store.Store,
	engine *resolution.Engine,
	challenges *challenge.Service,
	fx *effects.Tracker,
	cooldowns *cooldown.Ledger,
	gateway transport.Gateway,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		cfg:        cfg,
		store:      st,
		engine:     engine,
		challenges: challenges,
		effects:    fx,
		cooldowns:  cooldowns,
		gateway:    gateway,
		clock:      clk,
		metrics:    m,
		logger:     logger.With(slog.String("component", "economy")),
	}
}

// register records the actor's chat. Every command calls it first.
func (c *Controller) register(a Actor) {
	if c.store.RegisterChat(a.Chat) {
		c.logger.Info("chat registered", slog.String("chat", string(a.Chat)))
	}
}

func (c *Controller) requirePrivileged(a Actor) error {
	if !a.Privileged {
		return model.ErrNotPrivileged
	}
	return nil
}
