package storage

import (
	"context"

	"github.com/mcoot/candyledger/internal/model"
)

// Family names one of the independently stored record collections
type Family string

const (
	FamilyPlayers Family = "players"
	FamilyClans   Family = "clans"
	FamilyPromos  Family = "promos"
	FamilyChats   Family = "chats"
	FamilyPending Family = "pending"
)

// Families lists every family in write order
var Families = []Family{FamilyPlayers, FamilyClans, FamilyPromos, FamilyChats, FamilyPending}

// Snapshot is a full copy of the durable state
type Snapshot struct {
	Players map[model.PlayerID]*model.Player
	Clans   map[string]*model.Clan
	Promos  map[string]*model.Promo
	Chats   []model.ChatID
	Pending map[string]*model.PendingDecision
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Players: make(map[model.PlayerID]*model.Player),
		Clans:   make(map[string]*model.Clan),
		Promos:  make(map[string]*model.Promo),
		Chats:   []model.ChatID{},
		Pending: make(map[string]*model.PendingDecision),
	}
}

// Backend persists snapshots. Save must write all families atomically:
// after a crash, Load returns either the previous or the new snapshot in full.
type Backend interface {
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the last saved snapshot. Missing or unreadable families are
	// replaced by empty defaults; only backend unavailability is an error.
	Load(ctx context.Context) (*Snapshot, error)

	Close() error
}
