package economy

import (
	"errors"
	"time"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/store"
)

func (s *ControllerSuite) TestDailyOncePerDay() {
	res, err := s.controller.Daily(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(20), res.Balance)

	s.clock.Advance(23 * time.Hour)
	_, err = s.controller.Daily(s.ctx, alice)
	s.Require().ErrorIs(err, model.ErrCooldownActive)
	var cdErr *model.CooldownError
	s.Require().ErrorAs(err, &cdErr)
	s.Equal(time.Hour, cdErr.Remaining)

	s.clock.Advance(time.Hour)
	_, err = s.controller.Daily(s.ctx, alice)
	s.NoError(err)
	s.Equal(int64(30), s.store.Player("1").TotalEarned)
}

func (s *ControllerSuite) TestBalance() {
	res := s.controller.Balance(s.ctx, alice)
	s.Equal(&BalanceResult{Balance: 10, TotalEarned: 10}, res)
}

func (s *ControllerSuite) TestLeaderboards() {
	for i, id := range []model.PlayerID{"a", "b", "c", "d", "e", "f"} {
		s.Require().NoError(s.store.UpdatePlayer(id, func(tx *store.PlayerTx) error {
			tx.Credit(int64(i * 10))
			return nil
		}))
	}

	ranks := s.controller.Leaderboard(s.ctx, alice)
	s.Require().Len(ranks, 5)
	s.Equal(PlayerRank{Rank: 1, Player: "f", TotalEarned: 60}, ranks[0])
	s.Equal(model.PlayerID("b"), ranks[4].Player)

	s.Empty(s.controller.ClanLeaderboard(s.ctx, alice))
}

func (s *ControllerSuite) TestGiveTransfers() {
	res, err := s.controller.Give(s.ctx, alice, "2", 4)
	s.Require().NoError(err)
	s.Equal(int64(6), res.Balance)
	s.Equal(int64(14), s.balance("2"))

	p := s.store.Player("1")
	s.Equal(int64(4), p.Challenges.Give)
	s.Equal(int64(4), p.Gives.Count)
}

func (s *ControllerSuite) TestGiveValidation() {
	_, err := s.controller.Give(s.ctx, alice, "2", 0)
	s.ErrorIs(err, model.ErrInvalidAmount)
	_, err = s.controller.Give(s.ctx, alice, "1", 5)
	s.ErrorIs(err, model.ErrSelfTargetForbidden)
	_, err = s.controller.Give(s.ctx, alice, "2", 11)
	s.ErrorIs(err, model.ErrInsufficientFunds)
	s.Equal(int64(10), s.balance("1"))
}

func (s *ControllerSuite) TestGiveToUnknownAccountAbortsBeforeDebit() {
	s.gateway.Unknown["ghost"] = true
	_, err := s.controller.Give(s.ctx, alice, "ghost", 5)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	s.gateway.VerifyErr = errors.New("gateway down")
	_, err = s.controller.Give(s.ctx, alice, "2", 5)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	s.Equal(int64(10), s.balance("1"))
}

func (s *ControllerSuite) TestProfileIncludesBonus() {
	s.Require().NoError(s.store.UpdatePlayer("2", func(tx *store.PlayerTx) error {
		tx.Player().AddCostume("vampire")
		tx.Player().Costume = "vampire"
		return nil
	}))

	profile, err := s.controller.Profile(s.ctx, alice, "2")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("2"), profile.Player)
	s.Equal(int64(5), profile.Bonus)

	own, err := s.controller.Profile(s.ctx, alice, "")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("1"), own.Player)
}

func (s *ControllerSuite) TestChallengesAndClaim() {
	_, err := s.controller.Give(s.ctx, alice, "2", 10)
	s.Require().NoError(err)
	s.setBalance("1", 50)
	_, err = s.controller.Give(s.ctx, alice, "2", 40)
	s.Require().NoError(err)

	status := s.controller.Challenges(s.ctx, alice)
	s.True(status[1].Claimable)

	res, err := s.controller.ClaimChallenges(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(30), res.Candy)
}

func (s *ControllerSuite) TestRedeemPromo() {
	_, err := s.controller.CreatePromo(s.ctx, admin, "halloween", 15, 0)
	s.Require().NoError(err)

	res, err := s.controller.RedeemPromo(s.ctx, alice, "HALLOWEEN")
	s.Require().NoError(err)
	s.Equal(int64(25), res.Balance)
	s.Equal(int64(25), s.store.Player("1").TotalEarned)

	_, err = s.controller.RedeemPromo(s.ctx, alice, "halloween")
	s.ErrorIs(err, model.ErrPromoAlreadyRedeemed)
	s.Equal(int64(25), s.balance("1"))
}
