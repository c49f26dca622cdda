package effects

import (
	"slices"
	"sync"
	"time"

	"github.com/mcoot/candyledger/internal/model"
)

// Config holds multiplier settings
type Config struct {
	RaidMultiplier  int64
	FinalEventAt    time.Time
	FinalMultiplier int64
}

// Tracker answers which multipliers and bonuses apply at a given instant.
// Chat raid windows live in memory only; they are short and re-announced
// by the scheduler.
type Tracker struct {
	cfg     Config
	catalog model.Catalog

	mu    sync.RWMutex
	raids map[model.ChatID]time.Time
}

// New creates a Tracker
func New(cfg Config, catalog model.Catalog) *Tracker {
	return &Tracker{
		cfg:     cfg,
		catalog: catalog,
		raids:   make(map[model.ChatID]time.Time),
	}
}

// StartRaidWindow opens (or extends) a raid window for chat. Returns its expiry.
func (t *Tracker) StartRaidWindow(chat model.ChatID, now time.Time, d time.Duration) time.Time {
	expiry := now.Add(d)
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.raids[chat]; !ok || expiry.After(cur) {
		t.raids[chat] = expiry
	}
	return t.raids[chat]
}

// EndRaidWindow closes the raid window for chat. Ending a window that is not
// open is a no-op and returns false.
func (t *Tracker) EndRaidWindow(chat model.ChatID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.raids[chat]; !ok {
		return false
	}
	delete(t.raids, chat)
	return true
}

// RaidActive reports whether chat has an open raid window at now
func (t *Tracker) RaidActive(chat model.ChatID, now time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	expiry, ok := t.raids[chat]
	return ok && now.Before(expiry)
}

// RaidExpiry returns when the raid window for chat closes
func (t *Tracker) RaidExpiry(chat model.ChatID) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	expiry, ok := t.raids[chat]
	return expiry, ok
}

// ActiveRaids lists the chats with an open raid window at now
func (t *Tracker) ActiveRaids(now time.Time) []model.ChatID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []model.ChatID
	for chat, expiry := range t.raids {
		if now.Before(expiry) {
			out = append(out, chat)
		}
	}
	slices.Sort(out)
	return out
}

// FinalEventActive reports whether the final global event has started
func (t *Tracker) FinalEventActive(now time.Time) bool {
	return !t.cfg.FinalEventAt.IsZero() && !now.Before(t.cfg.FinalEventAt)
}

// ActiveMultiplier returns the currency multiplier for transfers resolved in chat at now.
// Raid and final event multipliers stack multiplicatively.
func (t *Tracker) ActiveMultiplier(chat model.ChatID, now time.Time) int64 {
	mult := int64(1)
	if chat != "" && t.RaidActive(chat, now) {
		mult *= max(t.cfg.RaidMultiplier, 1)
	}
	if t.FinalEventActive(now) {
		mult *= max(t.cfg.FinalMultiplier, 1)
	}
	return mult
}

// PlayerBonus returns the player's additive bonus at now: equipped costume
// plus every active potion. Expired timed potions are removed from p, so the
// caller should hold p inside a store transaction.
func (t *Tracker) PlayerBonus(p *model.Player, now time.Time) int64 {
	var bonus int64
	if p.Costume != "" {
		if c, ok := t.catalog.Costume(p.Costume); ok {
			bonus += c.Bonus
		}
	}
	for kind, effect := range p.ActivePotions {
		if effect.ExpiresAt != nil && !now.Before(*effect.ExpiresAt) {
			delete(p.ActivePotions, kind)
			continue
		}
		bonus += effect.Bonus
	}
	return bonus
}

// ApplyPotion activates a potion on p. Timed potions restart their window,
// permanent potions add to the accumulated bonus.
func (t *Tracker) ApplyPotion(p *model.Player, potion model.Potion, now time.Time) model.PotionEffect {
	if p.ActivePotions == nil {
		p.ActivePotions = map[model.PotionKind]model.PotionEffect{}
	}
	effect := p.ActivePotions[potion.Kind]
	if potion.Duration > 0 {
		expiry := now.Add(potion.Duration)
		effect = model.PotionEffect{ExpiresAt: &expiry, Bonus: potion.Bonus}
	} else {
		effect.ExpiresAt = nil
		effect.Bonus += potion.Bonus
	}
	p.ActivePotions[potion.Kind] = effect
	return effect
}
