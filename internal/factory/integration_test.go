package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/config"
	"github.com/mcoot/candyledger/internal/dependencies/mocks"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/economy"
	"github.com/mcoot/candyledger/internal/testutil"
)

var (
	alice = economy.Actor{ID: "1", Chat: "-100"}
	bob   = economy.Actor{ID: "2", Chat: "-100"}
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// reopen builds a second app over the same backend, as a restart would
func (s *IntegrationSuite) reopen() *App {
	app, err := newWithDependencies(s.app.Config, s.app.Tuning, s.app.Memory,
		mocks.NewMockGateway(), s.app.MockClock, mocks.NewMockRandom(), testutil.NopLogger())
	s.Require().NoError(err)
	s.Require().NoError(app.Restore(s.ctx))
	return app
}

func (s *IntegrationSuite) TestMutationsFlushAfterDelay() {
	_, err := s.app.Controller.Daily(s.ctx, alice)
	s.Require().NoError(err)
	s.True(s.app.Persist.Armed())
	s.Zero(s.app.Memory.Saves())

	s.app.MockClock.Advance(config.DefaultFlushDelay)

	s.False(s.app.Persist.Armed())
	s.Equal(1, s.app.Memory.Saves())
}

func (s *IntegrationSuite) TestStateSurvivesRestart() {
	_, err := s.app.Controller.Daily(s.ctx, alice)
	s.Require().NoError(err)
	_, err = s.app.Controller.Give(s.ctx, alice, bob.ID, 5)
	s.Require().NoError(err)
	s.Require().NoError(s.app.Close(s.ctx))

	restarted := s.reopen()

	p, err := restarted.Store.LookupPlayer(alice.ID)
	s.Require().NoError(err)
	s.Equal(int64(15), p.Balance)
	s.Equal(int64(20), p.TotalEarned)
	s.Equal(int64(5), p.Challenges.Give)
	s.Equal(int64(15), restarted.Store.Player(bob.ID).Balance)
	s.Equal([]model.ChatID{"-100"}, restarted.Store.Chats())

	_, err = restarted.Controller.Daily(s.ctx, alice)
	s.ErrorIs(err, model.ErrCooldownActive)
}

func (s *IntegrationSuite) TestStealThroughController() {
	started, err := s.app.Controller.StartSteal(s.ctx, alice, bob.ID)
	s.Require().NoError(err)

	resolved, err := s.app.Controller.AnswerSteal(s.ctx, bob, started.Token, "sweet")
	s.Require().NoError(err)
	s.Equal(int64(5), resolved.Taken)
	s.Equal(int64(15), s.app.Store.Player(alice.ID).Balance)
	s.Equal(int64(5), s.app.Store.Player(bob.ID).Balance)

	_, err = s.app.Controller.AnswerSteal(s.ctx, bob, started.Token, "sweet")
	s.ErrorIs(err, model.ErrAlreadyResolved)
}

func (s *IntegrationSuite) TestPendingDuelSurvivesRestart() {
	started, err := s.app.Controller.StartDuel(s.ctx, alice, bob.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.app.Persist.Flush(s.ctx))

	restarted := s.reopen()
	s.Equal(int64(0), restarted.Store.Player(alice.ID).Balance)

	// rock from the initiator against paper
	restarted.Random.(*mocks.MockRandom).QueueIntn(0)
	resolved, err := restarted.Controller.AnswerDuel(s.ctx, bob, started.Token, "paper")
	s.Require().NoError(err)
	s.Equal(bob.ID, resolved.Winner)
	s.Equal(int64(20), restarted.Store.Player(bob.ID).Balance)
}

func (s *IntegrationSuite) TestSweepJobRefundsExpiredDuel() {
	_, err := s.app.Controller.StartDuel(s.ctx, alice, bob.ID)
	s.Require().NoError(err)

	s.app.MockClock.Advance(s.app.Tuning.Duel.ChoiceTimeout + time.Second)
	s.app.Jobs.Sweep(s.ctx)

	s.Equal(int64(10), s.app.Store.Player(alice.ID).Balance)
	s.Equal(int64(10), s.app.Store.Player(bob.ID).Balance)
}

func (s *IntegrationSuite) TestRaidWindowDoublesSteal() {
	s.app.Controller.Balance(s.ctx, alice)
	s.Equal(1, s.app.Jobs.StartRaids(s.ctx))

	started, err := s.app.Controller.StartSteal(s.ctx, alice, bob.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), started.Multiplier)
	resolved, err := s.app.Controller.AnswerSteal(s.ctx, bob, started.Token, "sweet")
	s.Require().NoError(err)

	s.Equal(int64(2), resolved.Multiplier)
	s.Equal(int64(10), resolved.Gained)
	s.Len(s.app.MockGateway.Messages, 1)
}
