package economy

import (
	"context"
	"log/slog"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/store"
)

// AdminCredit adds currency to a player's balance
func (c *Controller) AdminCredit(ctx context.Context, a Actor, target model.PlayerID, amount int64) (*AdjustResult, error) {
	result, err := c.adjust(ctx, a, target, amount, func(tx *store.PlayerTx) int64 {
		tx.Credit(amount)
		return amount
	})
	c.metrics.Observe("admin_credit", err)
	if err != nil {
		return nil, err
	}
	c.metrics.Mint("admin", amount)
	return result, nil
}

// AdminDebit removes currency from a player's balance, stopping at zero
func (c *Controller) AdminDebit(ctx context.Context, a Actor, target model.PlayerID, amount int64) (*AdjustResult, error) {
	result, err := c.adjust(ctx, a, target, amount, func(tx *store.PlayerTx) int64 {
		return tx.DebitUpTo(amount)
	})
	c.metrics.Observe("admin_debit", err)
	return result, err
}

func (c *Controller) adjust(ctx context.Context, a Actor, target model.PlayerID, amount int64, apply func(tx *store.PlayerTx) int64) (*AdjustResult, error) {
	c.register(a)
	if err := c.requirePrivileged(a); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, model.ErrInvalidAmount
	}
	if err := c.verify(ctx, target); err != nil {
		return nil, err
	}

	result := &AdjustResult{Target: target}
	err := c.store.UpdatePlayer(target, func(tx *store.PlayerTx) error {
		result.Amount = apply(tx)
		result.Balance = tx.Player().Balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("balance adjusted by admin",
		slog.String("admin", string(a.ID)),
		slog.String("target", string(target)),
		slog.Int64("amount", result.Amount))
	return result, nil
}

// CreatePromo creates or updates a promo code. maxUses of zero means unlimited.
func (c *Controller) CreatePromo(ctx context.Context, a Actor, code string, reward int64, maxUses int) (*model.Promo, error) {
	c.register(a)
	if err := c.requirePrivileged(a); err != nil {
		return nil, err
	}
	promo, err := c.store.UpsertPromo(code, reward, maxUses)
	c.metrics.Observe("promo_create", err)
	if err != nil {
		return nil, err
	}
	c.logger.Info("promo saved",
		slog.String("code", promo.Code),
		slog.Int64("reward", promo.Reward),
		slog.Int("max_uses", promo.MaxUses))
	return promo, nil
}

// DeletePromo removes a promo code
func (c *Controller) DeletePromo(ctx context.Context, a Actor, code string) error {
	c.register(a)
	if err := c.requirePrivileged(a); err != nil {
		return err
	}
	err := c.store.DeletePromo(code)
	c.metrics.Observe("promo_delete", err)
	return err
}

// ListPromos lists every promo code
func (c *Controller) ListPromos(ctx context.Context, a Actor) ([]*model.Promo, error) {
	c.register(a)
	if err := c.requirePrivileged(a); err != nil {
		return nil, err
	}
	promos := c.store.Promos()
	if promos == nil {
		promos = []*model.Promo{}
	}
	return promos, nil
}

// ResetCooldown clears a steal cooldown for a player or a war cooldown for a clan
func (c *Controller) ResetCooldown(ctx context.Context, a Actor, kind cooldown.Kind, subject string) (*CooldownReset, error) {
	c.register(a)
	result, err := c.resetCooldown(a, kind, subject)
	c.metrics.Observe("cooldown_reset", err)
	if err != nil {
		return nil, err
	}
	c.logger.Info("cooldown reset by admin",
		slog.String("admin", string(a.ID)),
		slog.String("kind", string(kind)),
		slog.String("subject", subject),
		slog.Bool("cleared", result.Cleared))
	return result, nil
}

func (c *Controller) resetCooldown(a Actor, kind cooldown.Kind, subject string) (*CooldownReset, error) {
	if err := c.requirePrivileged(a); err != nil {
		return nil, err
	}
	if kind == cooldown.KindClanWar {
		if _, err := c.store.Clan(subject); err != nil {
			return nil, err
		}
	}
	return &CooldownReset{
		Kind:    kind,
		Subject: subject,
		Cleared: c.cooldowns.Reset(subject, kind),
	}, nil
}

// Stats summarises the ledger for admins
func (c *Controller) Stats(ctx context.Context, a Actor) (*Stats, error) {
	c.register(a)
	if err := c.requirePrivileged(a); err != nil {
		return nil, err
	}
	st := c.store.Stats()
	return &Stats{
		Players:        st.Players,
		Clans:          st.Clans,
		Promos:         st.Promos,
		Chats:          st.Chats,
		Pending:        st.Pending,
		ActiveRaids:    len(c.effects.ActiveRaids(c.clock.Now())),
		RecentStealers: c.cooldowns.Active(cooldown.KindSteal),
	}, nil
}
