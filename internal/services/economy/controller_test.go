package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/config"
	"github.com/mcoot/candyledger/internal/dependencies/mocks"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/challenge"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/services/effects"
	"github.com/mcoot/candyledger/internal/services/resolution"
	"github.com/mcoot/candyledger/internal/store"
	"github.com/mcoot/candyledger/internal/testutil"
)

var (
	alice = Actor{ID: "1", Chat: "-1001"}
	bob   = Actor{ID: "2", Chat: "-1001"}
	admin = Actor{ID: "99", Chat: "-1002", Privileged: true}
)

type ControllerSuite struct {
	suite.Suite
	ctx        context.Context
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	gateway    *mocks.MockGateway
	store      *store.Store
	effects    *effects.Tracker
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	tuning := config.DefaultTuning()
	m := metrics.New()

	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.gateway = mocks.NewMockGateway()
	s.store = store.New(store.DefaultConfig(), s.clock, logger)
	s.effects = effects.New(effects.Config{
		RaidMultiplier:  tuning.Events.RaidMultiplier,
		FinalEventAt:    tuning.Events.FinalEventAt,
		FinalMultiplier: tuning.Events.FinalMultiplier,
	}, tuning.Catalog)
	cooldowns := cooldown.New(s.clock)
	engine := resolution.New(resolution.DefaultConfig(), s.store, cooldowns, s.effects,
		s.gateway, s.clock, s.random, m, logger)
	challenges := challenge.New(challenge.DefaultConfig(), s.store, m, logger)

	s.controller = NewController(Config{
		DailyReward:       tuning.Daily.Reward,
		DailyCooldown:     tuning.Daily.Cooldown,
		LeaderboardSize:   tuning.LeaderboardSize,
		ClanCreateCost:    tuning.Clan.CreateCost,
		LicoricePrice:     tuning.Shop.LicoricePrice,
		ClanLicoricePrice: tuning.Shop.ClanLicoricePrice,
		Catalog:           tuning.Catalog,
	}, s.store, engine, challenges, s.effects, cooldowns, s.gateway, s.clock, m, logger)
}

func (s *ControllerSuite) setBalance(id model.PlayerID, n int64) {
	s.Require().NoError(s.store.UpdatePlayer(id, func(tx *store.PlayerTx) error {
		tx.Player().Balance = n
		return nil
	}))
}

func (s *ControllerSuite) balance(id model.PlayerID) int64 {
	return s.store.Player(id).Balance
}

func (s *ControllerSuite) TestCommandsRegisterChat() {
	s.controller.Balance(s.ctx, alice)
	s.controller.Balance(s.ctx, admin)
	s.controller.Balance(s.ctx, Actor{ID: "3"})

	s.Equal([]model.ChatID{"-1001", "-1002"}, s.store.Chats())
}

func (s *ControllerSuite) TestAdminCommandsRequirePrivilege() {
	_, err := s.controller.AdminCredit(s.ctx, alice, "2", 10)
	s.ErrorIs(err, model.ErrNotPrivileged)
	_, err = s.controller.AdminDebit(s.ctx, alice, "2", 10)
	s.ErrorIs(err, model.ErrNotPrivileged)
	_, err = s.controller.CreatePromo(s.ctx, alice, "X", 10, 0)
	s.ErrorIs(err, model.ErrNotPrivileged)
	s.ErrorIs(s.controller.DeletePromo(s.ctx, alice, "X"), model.ErrNotPrivileged)
	_, err = s.controller.ListPromos(s.ctx, alice)
	s.ErrorIs(err, model.ErrNotPrivileged)
	_, err = s.controller.Stats(s.ctx, alice)
	s.ErrorIs(err, model.ErrNotPrivileged)

	s.Equal(int64(10), s.balance("2"))
}
