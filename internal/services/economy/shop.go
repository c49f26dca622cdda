package economy

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/challenge"
	"github.com/mcoot/candyledger/internal/store"
)

// Shop lists the catalog. Hidden costumes appear only to players who own them.
func (c *Controller) Shop(ctx context.Context, a Actor) *Shop {
	c.register(a)
	p := c.store.Player(a.ID)

	shop := &Shop{
		Costumes:          []ShopCostume{},
		Potions:           slices.Clone(c.cfg.Catalog.Potions),
		LicoricePrice:     c.cfg.LicoricePrice,
		ClanLicoricePrice: c.cfg.ClanLicoricePrice,
		ClanLicorice:      p.Clan != "",
	}
	for _, cos := range c.cfg.Catalog.Costumes {
		owned := p.OwnsCostume(cos.ID)
		if cos.Hidden && !owned {
			continue
		}
		shop.Costumes = append(shop.Costumes, ShopCostume{Costume: cos, Owned: owned})
	}
	return shop
}

// Purchase buys one item. Items are named by costume ID, potion kind,
// "licorice" or "clan_licorice".
func (c *Controller) Purchase(ctx context.Context, a Actor, item string) (*PurchaseResult, error) {
	c.register(a)
	result, err := c.purchase(a, item)
	c.metrics.Observe("purchase", err)
	if err != nil {
		return nil, err
	}
	c.logger.Info("item purchased",
		slog.String("player", string(a.ID)),
		slog.String("item", item),
		slog.Int64("price", result.Price))
	return result, nil
}

func (c *Controller) purchase(a Actor, item string) (*PurchaseResult, error) {
	result := &PurchaseResult{Item: item}

	// Potions count toward the daily tally but not the buy challenge
	bought := func(tx *store.PlayerTx) {
		tx.Player().Buys.Count++
		result.Balance = tx.Player().Balance
	}
	boughtForChallenge := func(tx *store.PlayerTx) {
		challenge.RecordBuy(tx.Player())
		bought(tx)
	}

	switch item {
	case model.ItemLicorice:
		result.Price = c.cfg.LicoricePrice
		return result, c.store.UpdatePlayer(a.ID, func(tx *store.PlayerTx) error {
			if err := tx.Debit(result.Price); err != nil {
				return err
			}
			tx.Player().Licorice++
			boughtForChallenge(tx)
			return nil
		})

	case model.ItemClanLicorice:
		result.Price = c.cfg.ClanLicoricePrice
		return result, c.store.UpdateMember(a.ID, func(tx *store.PlayerTx, clan *store.ClanTx) error {
			if err := tx.Debit(result.Price); err != nil {
				return err
			}
			clan.Clan().Licorice++
			boughtForChallenge(tx)
			return nil
		})
	}

	if cos, ok := c.cfg.Catalog.Costume(model.CostumeID(item)); ok && !cos.Hidden {
		result.Price = cos.Price
		return result, c.store.UpdatePlayer(a.ID, func(tx *store.PlayerTx) error {
			p := tx.Player()
			if p.OwnsCostume(cos.ID) {
				return model.ErrAlreadyOwned
			}
			if err := tx.Debit(cos.Price); err != nil {
				return err
			}
			p.AddCostume(cos.ID)
			if p.Costume == "" {
				p.Costume = cos.ID
			}
			result.Equipped = p.Costume
			boughtForChallenge(tx)
			return nil
		})
	}

	if potion, ok := c.cfg.Catalog.Potion(model.PotionKind(item)); ok {
		result.Price = potion.Price
		return result, c.store.UpdatePlayer(a.ID, func(tx *store.PlayerTx) error {
			if err := tx.Debit(potion.Price); err != nil {
				return err
			}
			tx.Player().AddPotion(potion.Kind)
			bought(tx)
			return nil
		})
	}

	return nil, model.ErrUnknownItem
}

// Inventory lists the actor's costumes, potions and licorice
func (c *Controller) Inventory(ctx context.Context, a Actor) *Inventory {
	c.register(a)
	now := c.clock.Now()

	var inv *Inventory
	_ = c.store.UpdatePlayer(a.ID, func(tx *store.PlayerTx) error {
		p := tx.Player()
		c.effects.PlayerBonus(p, now) // drops expired potions
		inv = &Inventory{
			Costumes:      []InventoryCostume{},
			Potions:       []InventoryPotion{},
			ActivePotions: maps.Clone(p.ActivePotions),
			Licorice:      p.Licorice,
		}
		for _, id := range p.OwnedCostumes {
			cos, ok := c.cfg.Catalog.Costume(id)
			if !ok {
				cos = model.Costume{ID: id, Name: string(id)}
			}
			inv.Costumes = append(inv.Costumes, InventoryCostume{Costume: cos, Equipped: p.Costume == id})
		}
		for _, kind := range slices.Sorted(maps.Keys(p.Potions)) {
			potion, ok := c.cfg.Catalog.Potion(kind)
			if !ok {
				potion = model.Potion{Kind: kind, Name: string(kind)}
			}
			inv.Potions = append(inv.Potions, InventoryPotion{Potion: potion, Count: p.Potions[kind]})
		}
		return nil
	})

	if p := c.store.Player(a.ID); p.Clan != "" {
		if clan, err := c.store.Clan(p.Clan); err == nil {
			inv.ClanLicorice = &clan.Licorice
		}
	}
	return inv
}

// Use equips an owned costume or consumes an owned potion
func (c *Controller) Use(ctx context.Context, a Actor, item string) (*UseResult, error) {
	c.register(a)
	now := c.clock.Now()
	result := &UseResult{Item: item}

	err := c.store.UpdatePlayer(a.ID, func(tx *store.PlayerTx) error {
		p := tx.Player()
		if cos, ok := c.cfg.Catalog.Costume(model.CostumeID(item)); ok {
			if !p.OwnsCostume(cos.ID) {
				return model.ErrNotOwned
			}
			p.Costume = cos.ID
			result.Equipped = cos.ID
			return nil
		}
		if potion, ok := c.cfg.Catalog.Potion(model.PotionKind(item)); ok {
			if !p.TakePotion(potion.Kind) {
				return model.ErrNotOwned
			}
			effect := c.effects.ApplyPotion(p, potion, now)
			result.Effect = &effect
			return nil
		}
		return model.ErrUnknownItem
	})
	c.metrics.Observe("use", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}
