package model

import (
	"maps"
	"slices"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// ChatID identifies a chat scope (group chat or direct conversation)
type ChatID string

// DateLayout is the layout of the calendar dates used by daily counters
const DateLayout = "2006-01-02"

// DailyCounter is a per-day action counter that resets when its date changes
type DailyCounter struct {
	Count int64  `json:"count"`
	Date  string `json:"date,omitempty"`
}

// ChallengeProgress holds the daily challenge counters
type ChallengeProgress struct {
	Steal int64 `json:"steal"`
	Give  int64 `json:"give"`
	Buy   int64 `json:"buy"`
}

// PotionEffect is an activated potion. Timed potions carry ExpiresAt,
// permanent ones accumulate Bonus.
type PotionEffect struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Bonus     int64      `json:"bonus,omitempty"`
}

// Player is a participant's economy record
type Player struct {
	ID            PlayerID                    `json:"id"`
	Balance       int64                       `json:"balance"`
	TotalEarned   int64                       `json:"total_earned"`
	LastClaim     *time.Time                  `json:"last_claim,omitempty"`
	Costume       CostumeID                   `json:"costume,omitempty"`
	OwnedCostumes []CostumeID                 `json:"owned_costumes"`
	ActivePotions map[PotionKind]PotionEffect `json:"active_potions"`
	Potions       map[PotionKind]int          `json:"potions"`
	Licorice      int64                       `json:"licorice"`
	Challenges    ChallengeProgress           `json:"challenges"`
	ChallengeDate string                      `json:"challenge_date,omitempty"`
	DuelWins      int64                       `json:"duel_wins"`
	Attacks       DailyCounter                `json:"attacks_today"`
	Buys          DailyCounter                `json:"buys_today"`
	Gives         DailyCounter                `json:"gives_today"`
	Clan          string                      `json:"clan,omitempty"`
}

// NewPlayer creates a player record with the starting balance
func NewPlayer(id PlayerID, startingBalance int64) *Player {
	return &Player{
		ID:            id,
		Balance:       startingBalance,
		TotalEarned:   startingBalance,
		OwnedCostumes: []CostumeID{},
		ActivePotions: map[PotionKind]PotionEffect{},
		Potions:       map[PotionKind]int{},
	}
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	if p.LastClaim != nil {
		t := *p.LastClaim
		c.LastClaim = &t
	}
	c.OwnedCostumes = slices.Clone(p.OwnedCostumes)
	if c.OwnedCostumes == nil {
		c.OwnedCostumes = []CostumeID{}
	}
	c.ActivePotions = make(map[PotionKind]PotionEffect, len(p.ActivePotions))
	for k, v := range p.ActivePotions {
		if v.ExpiresAt != nil {
			t := *v.ExpiresAt
			v.ExpiresAt = &t
		}
		c.ActivePotions[k] = v
	}
	c.Potions = maps.Clone(p.Potions)
	if c.Potions == nil {
		c.Potions = map[PotionKind]int{}
	}
	return &c
}

// Rollover resets every daily counter whose date differs from today.
// Returns true if anything changed.
func (p *Player) Rollover(today string) bool {
	changed := false
	for _, c := range []*DailyCounter{&p.Attacks, &p.Buys, &p.Gives} {
		if c.Date != today {
			c.Count = 0
			c.Date = today
			changed = true
		}
	}
	if p.ChallengeDate != today {
		p.Challenges = ChallengeProgress{}
		p.ChallengeDate = today
		changed = true
	}
	return changed
}

// OwnsCostume reports whether the player owns the given costume
func (p *Player) OwnsCostume(id CostumeID) bool {
	_, ok := slices.BinarySearch(p.OwnedCostumes, id)
	return ok
}

// AddCostume adds a costume to the owned set
func (p *Player) AddCostume(id CostumeID) {
	p.OwnedCostumes, _ = InsertSorted(p.OwnedCostumes, id)
}

// AddPotion puts one potion into the inventory
func (p *Player) AddPotion(kind PotionKind) {
	if p.Potions == nil {
		p.Potions = map[PotionKind]int{}
	}
	p.Potions[kind]++
}

// TakePotion removes one potion from the inventory
func (p *Player) TakePotion(kind PotionKind) bool {
	if p.Potions[kind] <= 0 {
		return false
	}
	p.Potions[kind]--
	if p.Potions[kind] == 0 {
		delete(p.Potions, kind)
	}
	return true
}
