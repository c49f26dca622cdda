package store

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/candyledger/internal/dependencies/clock"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/storage"
)

// Config holds the record defaults and limits
type Config struct {
	StartingBalance int64
	MaxClanSize     int
	NameMaxRunes    int
	Location        *time.Location
}

// DefaultConfig returns the standard store configuration
func DefaultConfig() Config {
	return Config{
		StartingBalance: 10,
		MaxClanSize:     20,
		NameMaxRunes:    20,
		Location:        time.UTC,
	}
}

// Store is the in-memory record store. Every record has its own lock.
//
// Lock order: players (ascending ID), then promos, then clans (ascending name).
// Pending decisions and chats are never locked together with other records.
type Store struct {
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger

	players *table[model.PlayerID, model.Player]
	clans   *table[string, model.Clan]
	promos  *table[string, model.Promo]
	pending *table[string, model.PendingDecision]

	chatsMu sync.Mutex
	chats   []model.ChatID

	onChange func()
}

// New creates an empty Store
func New(cfg Config, clk clock.Clock, logger *slog.Logger) *Store {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Store{
		cfg:      cfg,
		clock:    clk,
		logger:   logger.With(slog.String("component", "store")),
		players:  newTable[model.PlayerID, model.Player](),
		clans:    newTable[string, model.Clan](),
		promos:   newTable[string, model.Promo](),
		pending:  newTable[string, model.PendingDecision](),
		chats:    []model.ChatID{},
		onChange: func() {},
	}
}

// SetChangeHook registers fn to run after every committed mutation.
// It must be called before the store is used concurrently.
func (s *Store) SetChangeHook(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	s.onChange = fn
}

func (s *Store) changed() {
	s.onChange()
}

// Today returns the current calendar date used for daily counters
func (s *Store) Today() string {
	return s.clock.Now().In(s.cfg.Location).Format(model.DateLayout)
}

// Config returns the store configuration
func (s *Store) Config() Config {
	return s.cfg
}

// Snapshot copies the whole store. Each record is copied under its own lock,
// so the result is consistent per record.
func (s *Store) Snapshot() *storage.Snapshot {
	snap := storage.NewSnapshot()
	s.players.each((*model.Player).Clone, func(id model.PlayerID, p *model.Player) {
		snap.Players[id] = p
	})
	s.clans.each((*model.Clan).Clone, func(name string, c *model.Clan) {
		snap.Clans[name] = c
	})
	s.promos.each((*model.Promo).Clone, func(code string, p *model.Promo) {
		snap.Promos[code] = p
	})
	s.pending.each((*model.PendingDecision).Clone, func(token string, d *model.PendingDecision) {
		snap.Pending[token] = d
	})
	snap.Chats = s.Chats()
	return snap
}

// Restore replaces the store contents with a loaded snapshot.
// It does not trigger the change hook.
func (s *Store) Restore(snap *storage.Snapshot) {
	s.players.replace(snap.Players)
	s.clans.replace(snap.Clans)
	s.promos.replace(snap.Promos)
	s.pending.replace(snap.Pending)

	chats := slices.Clone(snap.Chats)
	slices.Sort(chats)
	s.chatsMu.Lock()
	s.chats = slices.Compact(chats)
	s.chatsMu.Unlock()

	s.logger.Info("store restored",
		slog.Int("players", len(snap.Players)),
		slog.Int("clans", len(snap.Clans)),
		slog.Int("promos", len(snap.Promos)),
		slog.Int("chats", len(snap.Chats)),
		slog.Int("pending", len(snap.Pending)))
}

// RegisterChat records a chat scope. Returns true if it was new.
func (s *Store) RegisterChat(chat model.ChatID) bool {
	if chat == "" {
		return false
	}
	s.chatsMu.Lock()
	var added bool
	s.chats, added = model.InsertSorted(s.chats, chat)
	s.chatsMu.Unlock()
	if added {
		s.changed()
	}
	return added
}

// Chats returns the registered chat scopes in ascending order
func (s *Store) Chats() []model.ChatID {
	s.chatsMu.Lock()
	defer s.chatsMu.Unlock()
	return slices.Clone(s.chats)
}

// Stats summarises the store contents
type Stats struct {
	Players int `json:"players"`
	Clans   int `json:"clans"`
	Promos  int `json:"promos"`
	Chats   int `json:"chats"`
	Pending int `json:"pending"`
}

// Stats returns record counts
func (s *Store) Stats() Stats {
	return Stats{
		Players: s.players.len(),
		Clans:   s.clans.len(),
		Promos:  s.promos.len(),
		Chats:   len(s.Chats()),
		Pending: s.pending.len(),
	}
}
