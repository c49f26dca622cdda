package store

import (
	"cmp"
	"slices"

	"github.com/mcoot/candyledger/internal/model"
)

// PlayerTx is a player record being modified inside UpdatePlayer.
// Changes are committed only when the update function returns nil.
type PlayerTx struct {
	p          *model.Player
	clanCredit int64
}

// Player returns the working copy of the record
func (t *PlayerTx) Player() *model.Player {
	return t.p
}

// Credit adds earned currency. The player's clan treasury receives the same
// amount when the transaction commits.
func (t *PlayerTx) Credit(n int64) {
	if n <= 0 {
		return
	}
	t.p.Balance += n
	t.p.TotalEarned += n
	t.clanCredit += n
}

// Debit removes exactly n, failing if the balance is too low
func (t *PlayerTx) Debit(n int64) error {
	if n < 0 {
		return model.ErrInvalidAmount
	}
	if n > t.p.Balance {
		return model.ErrInsufficientFunds
	}
	t.p.Balance -= n
	return nil
}

// DebitUpTo removes at most n, clamping at zero. Returns the amount taken.
func (t *PlayerTx) DebitUpTo(n int64) int64 {
	if n <= 0 {
		return 0
	}
	taken := min(n, t.p.Balance)
	t.p.Balance -= taken
	return taken
}

// Refund returns previously escrowed currency. It is not counted as earnings.
func (t *PlayerTx) Refund(n int64) {
	if n <= 0 {
		return
	}
	t.p.Balance += n
}

func (s *Store) newPlayer(id model.PlayerID) func() *model.Player {
	return func() *model.Player {
		return model.NewPlayer(id, s.cfg.StartingBalance)
	}
}

// Player fetches a player, creating it with defaults if absent
func (s *Store) Player(id model.PlayerID) *model.Player {
	e, created := s.players.lockOrCreate(id, s.newPlayer(id))
	rolled := e.val.Rollover(s.Today())
	p := e.val.Clone()
	e.mu.Unlock()
	if created || rolled {
		s.changed()
	}
	return p
}

// LookupPlayer fetches an existing player without creating one
func (s *Store) LookupPlayer(id model.PlayerID) (*model.Player, error) {
	e, ok := s.players.lock(id)
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rolled := e.val.Rollover(s.Today())
	p := e.val.Clone()
	e.mu.Unlock()
	if rolled {
		s.changed()
	}
	return p, nil
}

// Players returns a copy of every player in ID order
func (s *Store) Players() []*model.Player {
	var out []*model.Player
	s.players.each((*model.Player).Clone, func(_ model.PlayerID, p *model.Player) {
		out = append(out, p)
	})
	return out
}

// TopPlayers returns up to n players ordered by total earned, highest first
func (s *Store) TopPlayers(n int) []*model.Player {
	players := s.Players()
	slices.SortStableFunc(players, func(a, b *model.Player) int {
		if c := cmp.Compare(b.TotalEarned, a.TotalEarned); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n > 0 && len(players) > n {
		players = players[:n]
	}
	return players
}

// UpdatePlayer runs fn on a working copy of the player, creating the player if
// needed, and commits it if fn returns nil.
func (s *Store) UpdatePlayer(id model.PlayerID, fn func(tx *PlayerTx) error) error {
	return s.UpdatePlayers([]model.PlayerID{id}, func(txs map[model.PlayerID]*PlayerTx) error {
		return fn(txs[id])
	})
}

// UpdatePlayers locks several players in ascending ID order and runs fn on
// working copies of all of them. Either every record commits or none does.
func (s *Store) UpdatePlayers(ids []model.PlayerID, fn func(txs map[model.PlayerID]*PlayerTx) error) error {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	today := s.Today()
	entries := make([]*entry[model.Player], 0, len(ids))
	defer func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
	}()

	txs := make(map[model.PlayerID]*PlayerTx, len(ids))
	for _, id := range ids {
		e, _ := s.players.lockOrCreate(id, s.newPlayer(id))
		entries = append(entries, e)
		work := e.val.Clone()
		work.Rollover(today)
		txs[id] = &PlayerTx{p: work}
	}

	if err := fn(txs); err != nil {
		return err
	}

	for i, id := range ids {
		tx := txs[id]
		if tx.clanCredit > 0 && tx.p.Clan != "" {
			s.mirrorToClan(tx.p.Clan, tx.clanCredit)
		}
		entries[i].val = tx.p
	}
	s.changed()
	return nil
}

// mirrorToClan deposits a member's earnings into the clan treasury.
// Called with the member's lock held.
func (s *Store) mirrorToClan(name string, amount int64) {
	e, ok := s.clans.lock(name)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	c := e.val.Clone()
	c.Treasury += amount
	e.val = c
}
