package economy

import (
	"time"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/cooldown"
)

func (s *ControllerSuite) TestAdminCreditAndDebit() {
	res, err := s.controller.AdminCredit(s.ctx, admin, "1", 25)
	s.Require().NoError(err)
	s.Equal(int64(35), res.Balance)
	s.Equal(int64(35), s.store.Player("1").TotalEarned)

	res, err = s.controller.AdminDebit(s.ctx, admin, "1", 100)
	s.Require().NoError(err)
	s.Equal(int64(35), res.Amount)
	s.Equal(int64(0), res.Balance)
	s.Equal(int64(35), s.store.Player("1").TotalEarned)
}

func (s *ControllerSuite) TestAdminCreditUnknownAccount() {
	s.gateway.Unknown["404"] = true
	_, err := s.controller.AdminCredit(s.ctx, admin, "404", 5)
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.controller.AdminCredit(s.ctx, admin, "1", -5)
	s.ErrorIs(err, model.ErrInvalidAmount)
}

func (s *ControllerSuite) TestPromoAdministration() {
	_, err := s.controller.CreatePromo(s.ctx, admin, "spooky", 5, 1)
	s.Require().NoError(err)
	_, err = s.controller.CreatePromo(s.ctx, admin, "treat", 7, 0)
	s.Require().NoError(err)

	promos, err := s.controller.ListPromos(s.ctx, admin)
	s.Require().NoError(err)
	s.Require().Len(promos, 2)
	s.Equal("SPOOKY", promos[0].Code)

	_, err = s.controller.RedeemPromo(s.ctx, alice, "spooky")
	s.Require().NoError(err)
	_, err = s.controller.RedeemPromo(s.ctx, bob, "spooky")
	s.ErrorIs(err, model.ErrPromoExhausted)

	s.Require().NoError(s.controller.DeletePromo(s.ctx, admin, "Spooky"))
	s.ErrorIs(s.controller.DeletePromo(s.ctx, admin, "spooky"), model.ErrPromoNotFound)
	_, err = s.controller.RedeemPromo(s.ctx, bob, "spooky")
	s.ErrorIs(err, model.ErrPromoNotFound)
}

func (s *ControllerSuite) TestResetStealCooldown() {
	_, err := s.controller.StartSteal(s.ctx, alice, "2")
	s.Require().NoError(err)
	_, err = s.controller.StartSteal(s.ctx, alice, "3")
	s.Require().ErrorIs(err, model.ErrCooldownActive)

	_, err = s.controller.ResetCooldown(s.ctx, bob, cooldown.KindSteal, "1")
	s.ErrorIs(err, model.ErrNotPrivileged)

	res, err := s.controller.ResetCooldown(s.ctx, admin, cooldown.KindSteal, "1")
	s.Require().NoError(err)
	s.True(res.Cleared)

	_, err = s.controller.StartSteal(s.ctx, alice, "3")
	s.NoError(err)
}

func (s *ControllerSuite) TestResetWarCooldownNeedsClan() {
	_, err := s.controller.ResetCooldown(s.ctx, admin, cooldown.KindClanWar, "Clan Nobody")
	s.ErrorIs(err, model.ErrClanNotFound)

	res, err := s.controller.ResetCooldown(s.ctx, admin, cooldown.KindSteal, "7")
	s.Require().NoError(err)
	s.False(res.Cleared)
}

func (s *ControllerSuite) TestStats() {
	_, err := s.controller.StartSteal(s.ctx, alice, "2")
	s.Require().NoError(err)
	s.effects.StartRaidWindow("-1001", s.clock.Now(), 30*time.Minute)

	stats, err := s.controller.Stats(s.ctx, admin)
	s.Require().NoError(err)
	s.Equal(1, stats.Players)
	s.Equal(2, stats.Chats)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.ActiveRaids)
	s.Equal(1, stats.RecentStealers)
}
