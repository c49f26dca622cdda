package economy

import (
	"time"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/store"
)

func (s *ControllerSuite) TestShopHidesUnownedHiddenCostumes() {
	shop := s.controller.Shop(s.ctx, alice)
	s.Len(shop.Costumes, 4)
	s.False(shop.ClanLicorice)

	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *store.PlayerTx) error {
		tx.Player().AddCostume("barry")
		return nil
	}))
	shop = s.controller.Shop(s.ctx, alice)
	s.Len(shop.Costumes, 5)
}

func (s *ControllerSuite) TestBuyCostumeEquipsFirst() {
	s.setBalance("1", 200)

	res, err := s.controller.Purchase(s.ctx, alice, "ghost")
	s.Require().NoError(err)
	s.Equal(int64(160), res.Balance)
	s.Equal(model.CostumeID("ghost"), res.Equipped)

	res, err = s.controller.Purchase(s.ctx, alice, "vampire")
	s.Require().NoError(err)
	s.Equal(model.CostumeID("ghost"), res.Equipped)

	_, err = s.controller.Purchase(s.ctx, alice, "ghost")
	s.ErrorIs(err, model.ErrAlreadyOwned)

	p := s.store.Player("1")
	s.Equal([]model.CostumeID{"ghost", "vampire"}, p.OwnedCostumes)
	s.Equal(int64(2), p.Challenges.Buy)
	s.Equal(int64(2), p.Buys.Count)
}

func (s *ControllerSuite) TestBuyRejections() {
	_, err := s.controller.Purchase(s.ctx, alice, "jason")
	s.ErrorIs(err, model.ErrInsufficientFunds)
	_, err = s.controller.Purchase(s.ctx, alice, "barry")
	s.ErrorIs(err, model.ErrUnknownItem)
	_, err = s.controller.Purchase(s.ctx, alice, "broomstick")
	s.ErrorIs(err, model.ErrUnknownItem)
	_, err = s.controller.Purchase(s.ctx, alice, model.ItemClanLicorice)
	s.ErrorIs(err, model.ErrNotInClan)

	s.Equal(int64(10), s.balance("1"))
	s.Zero(s.store.Player("1").Challenges.Buy)
}

func (s *ControllerSuite) TestBuyLicorice() {
	s.setBalance("1", 15)

	_, err := s.controller.Purchase(s.ctx, alice, model.ItemLicorice)
	s.Require().NoError(err)
	p := s.store.Player("1")
	s.Equal(int64(1), p.Licorice)
	s.Equal(int64(0), p.Balance)
}

func (s *ControllerSuite) TestBuyClanLicorice() {
	s.setBalance("1", 130)
	clan, err := s.controller.CreateClan(s.ctx, alice, "Bats")
	s.Require().NoError(err)

	_, err = s.controller.Purchase(s.ctx, alice, model.ItemClanLicorice)
	s.Require().NoError(err)

	c, err := s.store.Clan(clan.Name)
	s.Require().NoError(err)
	s.Equal(int64(1), c.Licorice)
	s.Equal(int64(0), s.balance("1"))

	inv := s.controller.Inventory(s.ctx, alice)
	s.Require().NotNil(inv.ClanLicorice)
	s.Equal(int64(1), *inv.ClanLicorice)
}

func (s *ControllerSuite) TestPotionPurchaseSkipsBuyChallenge() {
	s.setBalance("1", 100)

	_, err := s.controller.Purchase(s.ctx, alice, string(model.PotionTempBoost))
	s.Require().NoError(err)

	p := s.store.Player("1")
	s.Zero(p.Challenges.Buy)
	s.Equal(int64(1), p.Buys.Count)
}

func (s *ControllerSuite) TestUsePotions() {
	s.setBalance("1", 150)
	_, err := s.controller.Purchase(s.ctx, alice, string(model.PotionTempBoost))
	s.Require().NoError(err)
	_, err = s.controller.Purchase(s.ctx, alice, string(model.PotionPermBoost))
	s.Require().NoError(err)

	inv := s.controller.Inventory(s.ctx, alice)
	s.Require().Len(inv.Potions, 2)
	s.Equal(1, inv.Potions[0].Count)

	res, err := s.controller.Use(s.ctx, alice, string(model.PotionTempBoost))
	s.Require().NoError(err)
	s.Require().NotNil(res.Effect.ExpiresAt)
	_, err = s.controller.Use(s.ctx, alice, string(model.PotionPermBoost))
	s.Require().NoError(err)

	profile, err := s.controller.Profile(s.ctx, alice, "")
	s.Require().NoError(err)
	s.Equal(int64(4), profile.Bonus)

	s.clock.Advance(31 * time.Minute)
	profile, err = s.controller.Profile(s.ctx, alice, "")
	s.Require().NoError(err)
	s.Equal(int64(2), profile.Bonus)
	s.NotContains(s.store.Player("1").ActivePotions, model.PotionTempBoost)

	_, err = s.controller.Use(s.ctx, alice, string(model.PotionTempBoost))
	s.ErrorIs(err, model.ErrNotOwned)
}

func (s *ControllerSuite) TestUseCostume() {
	_, err := s.controller.Use(s.ctx, alice, "ghost")
	s.ErrorIs(err, model.ErrNotOwned)

	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *store.PlayerTx) error {
		tx.Player().AddCostume("ghost")
		tx.Player().AddCostume("jason")
		return nil
	}))
	res, err := s.controller.Use(s.ctx, alice, "jason")
	s.Require().NoError(err)
	s.Equal(model.CostumeID("jason"), res.Equipped)

	inv := s.controller.Inventory(s.ctx, alice)
	s.Require().Len(inv.Costumes, 2)
	s.False(inv.Costumes[0].Equipped)
	s.True(inv.Costumes[1].Equipped)

	_, err = s.controller.Use(s.ctx, alice, "lantern")
	s.ErrorIs(err, model.ErrUnknownItem)
}
