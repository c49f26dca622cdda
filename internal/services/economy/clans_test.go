package economy

import (
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/resolution"
)

func (s *ControllerSuite) TestClanLifecycle() {
	s.setBalance("1", 100)

	clan, err := s.controller.CreateClan(s.ctx, alice, "Bats")
	s.Require().NoError(err)
	s.Equal("Clan Bats", clan.Name)
	s.Equal(int64(0), s.balance("1"))

	joined, err := s.controller.JoinClan(s.ctx, bob, clan.Name)
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{"2"}, joined.Members)

	shown, err := s.controller.ShowClan(s.ctx, bob, "")
	s.Require().NoError(err)
	s.Equal(clan.Name, shown.Name)

	_, err = s.controller.DisbandClan(s.ctx, bob)
	s.ErrorIs(err, model.ErrNotClanOwner)

	name, err := s.controller.LeaveClan(s.ctx, bob)
	s.Require().NoError(err)
	s.Equal(clan.Name, name)

	_, err = s.controller.DisbandClan(s.ctx, alice)
	s.Require().NoError(err)
	_, err = s.controller.ShowClan(s.ctx, alice, "")
	s.ErrorIs(err, model.ErrNotInClan)
}

func (s *ControllerSuite) TestClanCreateRequiresFunds() {
	_, err := s.controller.CreateClan(s.ctx, alice, "Bats")
	s.ErrorIs(err, model.ErrInsufficientFunds)
}

func (s *ControllerSuite) TestMemberEarningsFillTreasury() {
	s.setBalance("1", 100)
	clan, err := s.controller.CreateClan(s.ctx, alice, "Bats")
	s.Require().NoError(err)

	_, err = s.controller.Daily(s.ctx, alice)
	s.Require().NoError(err)

	shown, err := s.controller.ShowClan(s.ctx, bob, clan.Name)
	s.Require().NoError(err)
	s.Equal(int64(10), shown.Treasury)
}

func (s *ControllerSuite) TestClanWarDefended() {
	s.setBalance("1", 100)
	s.setBalance("2", 130)
	attacker, err := s.controller.CreateClan(s.ctx, alice, "Bats")
	s.Require().NoError(err)
	target, err := s.controller.CreateClan(s.ctx, bob, "Owls")
	s.Require().NoError(err)
	_, err = s.controller.Purchase(s.ctx, bob, model.ItemClanLicorice)
	s.Require().NoError(err)
	_, err = s.controller.AdminCredit(s.ctx, admin, "1", 60)
	s.Require().NoError(err)

	res, err := s.controller.ClanWar(s.ctx, alice, target.Name)
	s.Require().NoError(err)
	s.Equal(resolution.RaidDefended, res.Outcome)

	a, err := s.store.Clan(attacker.Name)
	s.Require().NoError(err)
	s.Equal(int64(10), a.Treasury)
	t, err := s.store.Clan(target.Name)
	s.Require().NoError(err)
	s.Equal(int64(0), t.Treasury)
	s.Equal(int64(0), t.Licorice)
}

func (s *ControllerSuite) TestStealAndDuelThroughController() {
	steal, err := s.controller.StartSteal(s.ctx, alice, "2")
	s.Require().NoError(err)
	_, err = s.controller.AnswerSteal(s.ctx, bob, steal.Token, "nonsense")
	s.ErrorIs(err, model.ErrInvalidChoice)
	res, err := s.controller.AnswerSteal(s.ctx, bob, steal.Token, "sweet")
	s.Require().NoError(err)
	s.Equal(resolution.StealTaken, res.Outcome)

	s.setBalance("2", 10)
	duel, err := s.controller.StartDuel(s.ctx, bob, "1")
	s.Require().NoError(err)
	s.random.QueueIntn(2) // scissors
	out, err := s.controller.AnswerDuel(s.ctx, alice, duel.Token, "rock")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("1"), out.Winner)
	s.Equal(int64(25), s.balance("1"))
	s.Equal(int64(0), s.balance("2"))
}
