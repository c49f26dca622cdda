package economy

import (
	"context"
	"log/slog"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/challenge"
	"github.com/mcoot/candyledger/internal/store"
)

// Daily pays the daily reward once per cooldown period
func (c *Controller) Daily(ctx context.Context, a Actor) (*DailyResult, error) {
	c.register(a)
	now := c.clock.Now()
	result := &DailyResult{Reward: c.cfg.DailyReward}

	err := c.store.UpdatePlayer(a.ID, func(tx *store.PlayerTx) error {
		p := tx.Player()
		if p.LastClaim != nil {
			if elapsed := now.Sub(*p.LastClaim); elapsed < c.cfg.DailyCooldown {
				return model.NewCooldownError("daily", c.cfg.DailyCooldown-elapsed)
			}
		}
		tx.Credit(c.cfg.DailyReward)
		claimed := now
		p.LastClaim = &claimed
		result.Balance = p.Balance
		result.NextClaim = now.Add(c.cfg.DailyCooldown)
		return nil
	})
	c.metrics.Observe("daily", err)
	if err != nil {
		return nil, err
	}
	c.metrics.Mint("daily", c.cfg.DailyReward)
	return result, nil
}

// Balance reports the actor's current and lifetime currency
func (c *Controller) Balance(ctx context.Context, a Actor) *BalanceResult {
	c.register(a)
	p := c.store.Player(a.ID)
	return &BalanceResult{Balance: p.Balance, TotalEarned: p.TotalEarned}
}

// Leaderboard lists the players with the most currency earned
func (c *Controller) Leaderboard(ctx context.Context, a Actor) []PlayerRank {
	c.register(a)
	players := c.store.TopPlayers(c.cfg.LeaderboardSize)
	ranks := make([]PlayerRank, 0, len(players))
	for i, p := range players {
		ranks = append(ranks, PlayerRank{Rank: i + 1, Player: p.ID, TotalEarned: p.TotalEarned})
	}
	return ranks
}

// ClanLeaderboard lists the clans with the largest treasuries
func (c *Controller) ClanLeaderboard(ctx context.Context, a Actor) []ClanRank {
	c.register(a)
	clans := c.store.TopClans(c.cfg.LeaderboardSize)
	ranks := make([]ClanRank, 0, len(clans))
	for i, cl := range clans {
		ranks = append(ranks, ClanRank{Rank: i + 1, Clan: cl.Name, Treasury: cl.Treasury, Members: cl.Size()})
	}
	return ranks
}

// Give transfers currency from the actor to another player. The target
// account is confirmed with the gateway before anything is debited.
func (c *Controller) Give(ctx context.Context, a Actor, target model.PlayerID, amount int64) (*GiveResult, error) {
	c.register(a)
	result, err := c.give(ctx, a, target, amount)
	c.metrics.Observe("give", err)
	return result, err
}

func (c *Controller) give(ctx context.Context, a Actor, target model.PlayerID, amount int64) (*GiveResult, error) {
	if amount <= 0 {
		return nil, model.ErrInvalidAmount
	}
	if target == a.ID {
		return nil, model.ErrSelfTargetForbidden
	}
	if c.store.Player(a.ID).Balance < amount {
		return nil, model.ErrInsufficientFunds
	}
	if err := c.verify(ctx, target); err != nil {
		return nil, err
	}

	result := &GiveResult{Target: target, Amount: amount}
	err := c.store.UpdatePlayers([]model.PlayerID{a.ID, target}, func(txs map[model.PlayerID]*store.PlayerTx) error {
		giver := txs[a.ID]
		if err := giver.Debit(amount); err != nil {
			return err
		}
		txs[target].Credit(amount)
		challenge.RecordGive(giver.Player(), amount)
		giver.Player().Gives.Count += amount
		result.Balance = giver.Player().Balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("currency given",
		slog.String("from", string(a.ID)),
		slog.String("to", string(target)),
		slog.Int64("amount", amount))
	return result, nil
}

// verify confirms with the gateway that an account exists. Any gateway
// failure counts as not found.
func (c *Controller) verify(ctx context.Context, id model.PlayerID) error {
	ok, err := c.gateway.VerifyAccountExists(ctx, id)
	if err != nil {
		c.logger.Warn("account verification failed",
			slog.String("player", string(id)),
			slog.String("error", err.Error()))
		return model.ErrPlayerNotFound
	}
	if !ok {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Profile returns a player's public profile. An empty target means the actor.
func (c *Controller) Profile(ctx context.Context, a Actor, target model.PlayerID) (*Profile, error) {
	c.register(a)
	if target == "" {
		target = a.ID
	}
	now := c.clock.Now()
	var profile *Profile
	err := c.store.UpdatePlayer(target, func(tx *store.PlayerTx) error {
		p := tx.Player()
		profile = &Profile{
			Player:      p.ID,
			Balance:     p.Balance,
			TotalEarned: p.TotalEarned,
			Costume:     p.Costume,
			Bonus:       c.effects.PlayerBonus(p, now),
			Licorice:    p.Licorice,
			DuelWins:    p.DuelWins,
			Clan:        p.Clan,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Challenges reports daily challenge progress
func (c *Controller) Challenges(ctx context.Context, a Actor) []challenge.Progress {
	c.register(a)
	return c.challenges.Status(a.ID)
}

// ClaimChallenges pays out completed daily challenges
func (c *Controller) ClaimChallenges(ctx context.Context, a Actor) (*challenge.ClaimResult, error) {
	c.register(a)
	return c.challenges.Claim(a.ID)
}

// RedeemPromo credits a promo code reward to the actor
func (c *Controller) RedeemPromo(ctx context.Context, a Actor, code string) (*PromoResult, error) {
	c.register(a)
	promo, err := c.store.RedeemPromo(code, a.ID)
	c.metrics.Observe("promo_redeem", err)
	if err != nil {
		return nil, err
	}
	c.metrics.Mint("promo", promo.Reward)
	c.logger.Info("promo redeemed",
		slog.String("code", promo.Code),
		slog.String("player", string(a.ID)))
	return &PromoResult{
		Code:    promo.Code,
		Reward:  promo.Reward,
		Balance: c.store.Player(a.ID).Balance,
	}, nil
}
