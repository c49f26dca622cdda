package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/candyledger/internal/dependencies/clock"
	"github.com/mcoot/candyledger/internal/dependencies/random"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/challenge"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/services/effects"
	"github.com/mcoot/candyledger/internal/store"
	"github.com/mcoot/candyledger/internal/transport"
)

// Config holds the steal, duel and raid balance values
type Config struct {
	StealBase     int64
	StealCooldown time.Duration
	StealTimeout  time.Duration
	MuteDuration  time.Duration

	DuelAnte     int64
	DuelTieBonus int64
	DuelTimeout  time.Duration

	WarCost       int64
	WarCooldown   time.Duration
	RaidBase      int64
	SuccessFactor float64

	// Settled decisions are kept this long after expiry so late answers
	// still see ErrAlreadyResolved
	Retention time.Duration
}

// DefaultConfig returns the standard balance values
func DefaultConfig() Config {
	return Config{
		StealBase:     5,
		StealCooldown: 10 * time.Minute,
		StealTimeout:  2 * time.Minute,
		MuteDuration:  2 * time.Minute,
		DuelAnte:      10,
		DuelTieBonus:  10,
		DuelTimeout:   2 * time.Minute,
		WarCost:       50,
		WarCooldown:   10 * time.Minute,
		RaidBase:      20,
		SuccessFactor: 0.6,
		Retention:     time.Hour,
	}
}

// Engine resolves steals, duels and clan raids against the store
type Engine struct {
	cfg       Config
	store     *store.Store
	cooldowns *cooldown.Ledger
	effects   *effects.Tracker
	gateway   transport.Gateway
	clock     clock.Clock
	random    random.Random
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a resolution engine
func New(
	cfg Config,
	st *store.Store,
	cooldowns *cooldown.Ledger,
	fx *effects.Tracker,
	gateway transport.Gateway,
	clk clock.Clock,
	rng random.Random,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     st,
		cooldowns: cooldowns,
		effects:   fx,
		gateway:   gateway,
		clock:     clk,
		random:    rng,
		metrics:   m,
		logger:    logger.With(slog.String("component", "resolution")),
	}
}

// InitiateSteal opens a steal attempt that the target must answer
func (e *Engine) InitiateSteal(ctx context.Context, actor, target model.PlayerID, chat model.ChatID) (*StealInitiated, error) {
	result, err := e.initiateSteal(actor, target, chat)
	e.metrics.Observe("steal_initiate", err)
	return result, err
}

func (e *Engine) initiateSteal(actor, target model.PlayerID, chat model.ChatID) (*StealInitiated, error) {
	if actor == target {
		return nil, model.ErrSelfTargetForbidden
	}
	if remaining, ok := e.cooldowns.TryConsume(string(actor), cooldown.KindSteal, e.cfg.StealCooldown); !ok {
		return nil, model.NewCooldownError("steal", remaining)
	}

	err := e.store.UpdatePlayer(actor, func(tx *store.PlayerTx) error {
		challenge.RecordSteal(tx.Player())
		tx.Player().Attacks.Count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	d := &model.PendingDecision{
		Token:     uuid.NewString(),
		Kind:      model.DecisionSteal,
		Initiator: actor,
		Target:    target,
		Chat:      chat,
		CreatedAt: now,
		ExpiresAt: now.Add(e.cfg.StealTimeout),
		State:     model.DecisionPending,

		Multiplier: e.effects.ActiveMultiplier(chat, now),
	}
	e.store.PutPending(d)

	e.logger.Info("steal initiated",
		slog.String("token", d.Token),
		slog.String("initiator", string(actor)),
		slog.String("target", string(target)))

	return &StealInitiated{
		Token:     d.Token,
		Initiator: actor,
		Target:    target,
		ExpiresAt: d.ExpiresAt,

		Multiplier: d.Multiplier,
	}, nil
}

// claim moves an open decision from pending to the given state. An expired
// decision is marked expired and reported through the expired return.
func (e *Engine) claim(token string, kind model.DecisionKind, actor model.PlayerID, to model.DecisionState) (*model.PendingDecision, bool, error) {
	var claimed *model.PendingDecision
	var expired bool
	err := e.store.UpdatePending(token, func(d *model.PendingDecision) error {
		if d.Kind != kind {
			return model.ErrDecisionNotFound
		}
		if d.Target != actor {
			return model.ErrNotParticipant
		}
		if d.State != model.DecisionPending {
			return model.ErrAlreadyResolved
		}
		if !d.Open(e.clock.Now()) {
			d.State = model.DecisionExpired
			expired = true
		} else {
			d.State = to
		}
		claimed = d.Clone()
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return claimed, expired, nil
}

func (e *Engine) setState(token string, state model.DecisionState) {
	err := e.store.UpdatePending(token, func(d *model.PendingDecision) error {
		d.State = state
		return nil
	})
	if err != nil {
		e.logger.Error("failed to update decision state",
			slog.String("token", token),
			slog.String("state", string(state)),
			slog.String("error", err.Error()))
	}
}

// ResolveSteal applies the target's choice to an open steal attempt
func (e *Engine) ResolveSteal(ctx context.Context, token string, actor model.PlayerID, choice StealChoice) (*StealResolution, error) {
	result, err := e.resolveSteal(ctx, token, actor, choice)
	e.metrics.Observe("steal_resolve", err)
	return result, err
}

func (e *Engine) resolveSteal(ctx context.Context, token string, actor model.PlayerID, choice StealChoice) (*StealResolution, error) {
	if _, err := ParseStealChoice(string(choice)); err != nil {
		return nil, err
	}

	to := model.DecisionResolved
	if choice == ChoiceTrick {
		to = model.DecisionResolving
	}
	d, expired, err := e.claim(token, model.DecisionSteal, actor, to)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, model.ErrAlreadyResolved
	}

	if choice == ChoiceTrick {
		return e.trick(ctx, d)
	}
	return e.sweet(d)
}

func (e *Engine) trick(ctx context.Context, d *model.PendingDecision) (*StealResolution, error) {
	if err := e.gateway.ApplyTemporaryMute(ctx, d.Chat, d.Target, e.cfg.MuteDuration); err != nil {
		e.setState(d.Token, model.DecisionPending)
		e.logger.Warn("mute failed, decision reopened",
			slog.String("token", d.Token),
			slog.String("target", string(d.Target)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: mute: %v", model.ErrExternalDependency, err)
	}
	e.setState(d.Token, model.DecisionResolved)

	e.logger.Info("steal tricked",
		slog.String("token", d.Token),
		slog.String("target", string(d.Target)),
		slog.Duration("mute", e.cfg.MuteDuration))

	return &StealResolution{
		Token:      d.Token,
		Outcome:    StealTricked,
		Initiator:  d.Initiator,
		Target:     d.Target,
		Multiplier: 1,
		Muted:      e.cfg.MuteDuration,
	}, nil
}

func (e *Engine) sweet(d *model.PendingDecision) (*StealResolution, error) {
	now := e.clock.Now()
	mult := max(d.Multiplier, 1)
	result := &StealResolution{
		Token:      d.Token,
		Initiator:  d.Initiator,
		Target:     d.Target,
		Multiplier: mult,
	}

	ids := []model.PlayerID{d.Initiator, d.Target}
	err := e.store.UpdatePlayers(ids, func(txs map[model.PlayerID]*store.PlayerTx) error {
		victim := txs[d.Target].Player()
		if victim.Licorice > 0 {
			victim.Licorice--
			result.Outcome = StealShielded
			return nil
		}
		result.Outcome = StealTaken
		result.Taken = txs[d.Target].DebitUpTo(e.cfg.StealBase)

		thief := txs[d.Initiator]
		result.Gained = (e.cfg.StealBase + e.effects.PlayerBonus(thief.Player(), now)) * mult
		thief.Credit(result.Gained)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.Mint("steal", result.Gained-result.Taken)
	e.logger.Info("steal resolved",
		slog.String("token", d.Token),
		slog.String("outcome", string(result.Outcome)),
		slog.Int64("taken", result.Taken),
		slog.Int64("gained", result.Gained),
		slog.Int64("multiplier", mult))
	return result, nil
}

// InitiateDuel escrows both antes and opens a duel the target must answer
func (e *Engine) InitiateDuel(ctx context.Context, actor, target model.PlayerID, chat model.ChatID) (*DuelInitiated, error) {
	result, err := e.initiateDuel(actor, target, chat)
	e.metrics.Observe("duel_initiate", err)
	return result, err
}

func (e *Engine) initiateDuel(actor, target model.PlayerID, chat model.ChatID) (*DuelInitiated, error) {
	if actor == target {
		return nil, model.ErrSelfTargetForbidden
	}
	ante := e.cfg.DuelAnte

	err := e.store.UpdatePlayers([]model.PlayerID{actor, target}, func(txs map[model.PlayerID]*store.PlayerTx) error {
		if txs[actor].Player().Balance < ante {
			return model.ErrInsufficientFunds
		}
		if txs[target].Player().Balance < ante {
			return model.ErrInsufficientTargetFunds
		}
		if err := txs[actor].Debit(ante); err != nil {
			return err
		}
		return txs[target].Debit(ante)
	})
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	d := &model.PendingDecision{
		Token:     uuid.NewString(),
		Kind:      model.DecisionDuel,
		Initiator: actor,
		Target:    target,
		Chat:      chat,
		CreatedAt: now,
		ExpiresAt: now.Add(e.cfg.DuelTimeout),
		State:     model.DecisionPending,
		Ante:      ante,
	}
	e.store.PutPending(d)

	e.logger.Info("duel initiated",
		slog.String("token", d.Token),
		slog.String("initiator", string(actor)),
		slog.String("target", string(target)),
		slog.Int64("ante", ante))

	return &DuelInitiated{
		Token:     d.Token,
		Initiator: actor,
		Target:    target,
		Ante:      ante,
		ExpiresAt: d.ExpiresAt,
	}, nil
}

// ResolveDuel plays the target's hand against a randomly drawn initiator hand
func (e *Engine) ResolveDuel(ctx context.Context, token string, actor model.PlayerID, choice DuelChoice) (*DuelResolution, error) {
	result, err := e.resolveDuel(token, actor, choice)
	e.metrics.Observe("duel_resolve", err)
	return result, err
}

func (e *Engine) resolveDuel(token string, actor model.PlayerID, choice DuelChoice) (*DuelResolution, error) {
	if _, err := ParseDuelChoice(string(choice)); err != nil {
		return nil, err
	}
	d, expired, err := e.claim(token, model.DecisionDuel, actor, model.DecisionResolved)
	if err != nil {
		return nil, err
	}
	if expired {
		e.refundDuel(d)
		return nil, model.ErrAlreadyResolved
	}

	result := &DuelResolution{
		Token:           d.Token,
		Initiator:       d.Initiator,
		Target:          d.Target,
		InitiatorChoice: duelChoices[e.random.Intn(len(duelChoices))],
		TargetChoice:    choice,
	}
	switch {
	case result.InitiatorChoice == result.TargetChoice:
		result.Tie = true
		result.Payout = d.Ante + e.cfg.DuelTieBonus
	case beats[result.TargetChoice] == result.InitiatorChoice:
		result.Winner = d.Target
		result.Payout = 2 * d.Ante
	default:
		result.Winner = d.Initiator
		result.Payout = 2 * d.Ante
	}

	err = e.store.UpdatePlayers([]model.PlayerID{d.Initiator, d.Target}, func(txs map[model.PlayerID]*store.PlayerTx) error {
		if result.Tie {
			for _, tx := range txs {
				tx.Refund(d.Ante)
				tx.Credit(e.cfg.DuelTieBonus)
			}
			return nil
		}
		winner := txs[result.Winner]
		winner.Refund(d.Ante)
		winner.Credit(d.Ante)
		winner.Player().DuelWins++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Tie {
		e.metrics.Mint("duel_tie", 2*e.cfg.DuelTieBonus)
	}
	e.logger.Info("duel resolved",
		slog.String("token", d.Token),
		slog.Bool("tie", result.Tie),
		slog.String("winner", string(result.Winner)),
		slog.Int64("payout", result.Payout))
	return result, nil
}

func (e *Engine) refundDuel(d *model.PendingDecision) {
	err := e.store.UpdatePlayers([]model.PlayerID{d.Initiator, d.Target}, func(txs map[model.PlayerID]*store.PlayerTx) error {
		for _, tx := range txs {
			tx.Refund(d.Ante)
		}
		return nil
	})
	if err != nil {
		e.logger.Error("failed to refund expired duel",
			slog.String("token", d.Token),
			slog.String("error", err.Error()))
		return
	}
	e.logger.Info("expired duel refunded",
		slog.String("token", d.Token),
		slog.Int64("ante", d.Ante))
}

// SweepExpired marks every pending decision past its deadline as expired,
// refunds escrowed duel antes, and drops settled decisions older than the
// retention period. Returns the number of decisions expired.
func (e *Engine) SweepExpired(ctx context.Context) int {
	now := e.clock.Now()
	expired := 0
	open := 0
	for _, d := range e.store.PendingDecisions() {
		if d.State != model.DecisionPending {
			continue
		}
		if d.Open(now) {
			open++
			continue
		}
		var swept *model.PendingDecision
		err := e.store.UpdatePending(d.Token, func(cur *model.PendingDecision) error {
			if cur.State != model.DecisionPending || cur.Open(now) {
				return errNotStale
			}
			cur.State = model.DecisionExpired
			swept = cur.Clone()
			return nil
		})
		if err != nil {
			continue
		}
		if swept.Kind == model.DecisionDuel {
			e.refundDuel(swept)
		}
		expired++
	}

	pruned := e.store.PrunePending(now.Add(-e.cfg.Retention))
	e.metrics.PendingOpen.Set(float64(open))
	if expired > 0 || pruned > 0 {
		e.logger.Info("pending decisions swept",
			slog.Int("expired", expired),
			slog.Int("pruned", pruned))
	}
	return expired
}

var errNotStale = errors.New("decision is not stale")

// Raid attacks another clan's treasury on behalf of the actor's clan
func (e *Engine) Raid(ctx context.Context, actor model.PlayerID, target string, chat model.ChatID) (*RaidResult, error) {
	result, err := e.raid(actor, target, chat)
	e.metrics.Observe("clan_war", err)
	if err != nil {
		return nil, err
	}
	e.notifyRaid(ctx, result)
	return result, nil
}

func (e *Engine) raid(actor model.PlayerID, target string, chat model.ChatID) (*RaidResult, error) {
	now := e.clock.Now()

	// The owner's bonus is read first; players lock before clans.
	var attacker string
	var bonus int64
	err := e.store.UpdatePlayer(actor, func(tx *store.PlayerTx) error {
		attacker = tx.Player().Clan
		bonus = e.effects.PlayerBonus(tx.Player(), now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if attacker == "" {
		return nil, model.ErrNotClanOwner
	}
	if attacker == target {
		return nil, model.ErrSelfTargetForbidden
	}

	mult := e.effects.ActiveMultiplier(chat, now)
	result := &RaidResult{
		Attacker:   attacker,
		Target:     target,
		Cost:       e.cfg.WarCost,
		Multiplier: mult,
	}

	err = e.store.UpdateClans(attacker, target, func(a, t *store.ClanTx) error {
		if a.Clan().Owner != actor {
			return model.ErrNotClanOwner
		}
		if remaining := e.cooldowns.Remaining(attacker, cooldown.KindClanWar, e.cfg.WarCooldown); remaining > 0 {
			return model.NewCooldownError("clan war", remaining)
		}
		if a.Clan().Treasury < e.cfg.WarCost {
			return model.ErrInsufficientFunds
		}
		if remaining, ok := e.cooldowns.TryConsume(attacker, cooldown.KindClanWar, e.cfg.WarCooldown); !ok {
			return model.NewCooldownError("clan war", remaining)
		}
		if err := a.Withdraw(e.cfg.WarCost); err != nil {
			return err
		}

		if t.UseLicorice() {
			result.Outcome = RaidDefended
			return nil
		}

		attackers := float64(a.Clan().Size())
		defenders := float64(max(t.Clan().Size(), 1))
		result.Chance = e.cfg.SuccessFactor * attackers / defenders
		if e.random.Float64() >= result.Chance {
			result.Outcome = RaidFailed
			return nil
		}
		result.Outcome = RaidSucceeded
		result.Stolen = t.WithdrawUpTo((e.cfg.RaidBase + bonus) * mult)
		a.Deposit(result.Stolen)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("clan raid",
		slog.String("attacker", attacker),
		slog.String("target", target),
		slog.String("outcome", string(result.Outcome)),
		slog.Float64("chance", result.Chance),
		slog.Int64("stolen", result.Stolen))
	return result, nil
}

func (e *Engine) notifyRaid(ctx context.Context, result *RaidResult) {
	c, err := e.store.Clan(result.Target)
	if err != nil {
		return
	}
	var text string
	switch result.Outcome {
	case RaidDefended:
		text = fmt.Sprintf("%s raided %s but clan licorice held them off.", result.Attacker, result.Target)
	case RaidFailed:
		text = fmt.Sprintf("%s raided %s and failed.", result.Attacker, result.Target)
	default:
		text = fmt.Sprintf("%s raided %s and took %d candy from the treasury.", result.Attacker, result.Target, result.Stolen)
	}
	if err := e.gateway.SendDirectNotification(ctx, c.Owner, text); err != nil {
		e.logger.Warn("raid notification failed",
			slog.String("owner", string(c.Owner)),
			slog.String("error", err.Error()))
	}
}
