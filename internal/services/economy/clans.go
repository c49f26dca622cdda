package economy

import (
	"context"
	"log/slog"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/resolution"
)

// CreateClan founds a clan owned by the actor for the creation cost
func (c *Controller) CreateClan(ctx context.Context, a Actor, base string) (*model.Clan, error) {
	c.register(a)
	clan, err := c.store.CreateClan(a.ID, base, c.cfg.ClanCreateCost)
	c.metrics.Observe("clan_create", err)
	return clan, err
}

// ShowClan returns a clan by name. An empty name means the actor's clan.
func (c *Controller) ShowClan(ctx context.Context, a Actor, name string) (*model.Clan, error) {
	c.register(a)
	if name == "" {
		name = c.store.Player(a.ID).Clan
		if name == "" {
			return nil, model.ErrNotInClan
		}
	}
	return c.store.Clan(name)
}

// JoinClan adds the actor to a clan
func (c *Controller) JoinClan(ctx context.Context, a Actor, name string) (*model.Clan, error) {
	c.register(a)
	clan, err := c.store.JoinClan(a.ID, name)
	c.metrics.Observe("clan_join", err)
	if err != nil {
		return nil, err
	}
	c.logger.Info("clan joined",
		slog.String("clan", clan.Name),
		slog.String("player", string(a.ID)))
	return clan, nil
}

// LeaveClan removes the actor from their clan. Returns the clan name.
func (c *Controller) LeaveClan(ctx context.Context, a Actor) (string, error) {
	c.register(a)
	name, err := c.store.LeaveClan(a.ID)
	c.metrics.Observe("clan_leave", err)
	return name, err
}

// DisbandClan deletes the actor's clan. Returns the clan name.
func (c *Controller) DisbandClan(ctx context.Context, a Actor) (string, error) {
	c.register(a)
	name, err := c.store.DisbandClan(a.ID)
	c.metrics.Observe("clan_disband", err)
	if err != nil {
		return "", err
	}
	c.logger.Info("clan disbanded",
		slog.String("clan", name),
		slog.String("owner", string(a.ID)))
	return name, nil
}

// ClanWar raids another clan's treasury
func (c *Controller) ClanWar(ctx context.Context, a Actor, target string) (*resolution.RaidResult, error) {
	c.register(a)
	return c.engine.Raid(ctx, a.ID, target, a.Chat)
}
