package economy

import (
	"context"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/resolution"
)

// StartSteal opens a trick-or-treat against target
func (c *Controller) StartSteal(ctx context.Context, a Actor, target model.PlayerID) (*resolution.StealInitiated, error) {
	c.register(a)
	return c.engine.InitiateSteal(ctx, a.ID, target, a.Chat)
}

// AnswerSteal resolves a trick-or-treat addressed to the actor
func (c *Controller) AnswerSteal(ctx context.Context, a Actor, token, choice string) (*resolution.StealResolution, error) {
	c.register(a)
	parsed, err := resolution.ParseStealChoice(choice)
	if err != nil {
		return nil, err
	}
	return c.engine.ResolveSteal(ctx, token, a.ID, parsed)
}

// StartDuel challenges target to a duel
func (c *Controller) StartDuel(ctx context.Context, a Actor, target model.PlayerID) (*resolution.DuelInitiated, error) {
	c.register(a)
	return c.engine.InitiateDuel(ctx, a.ID, target, a.Chat)
}

// AnswerDuel plays the actor's hand in a duel addressed to them
func (c *Controller) AnswerDuel(ctx context.Context, a Actor, token, choice string) (*resolution.DuelResolution, error) {
	c.register(a)
	parsed, err := resolution.ParseDuelChoice(choice)
	if err != nil {
		return nil, err
	}
	return c.engine.ResolveDuel(ctx, token, a.ID, parsed)
}
