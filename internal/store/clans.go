package store

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mcoot/candyledger/internal/model"
)

// ClanTx is a clan record being modified inside UpdateClan or UpdateClans
type ClanTx struct {
	c *model.Clan
}

// Clan returns the working copy of the record
func (t *ClanTx) Clan() *model.Clan {
	return t.c
}

// Deposit adds n to the treasury
func (t *ClanTx) Deposit(n int64) {
	if n > 0 {
		t.c.Treasury += n
	}
}

// Withdraw removes exactly n from the treasury, failing if it is too low
func (t *ClanTx) Withdraw(n int64) error {
	if n < 0 {
		return model.ErrInvalidAmount
	}
	if n > t.c.Treasury {
		return model.ErrInsufficientFunds
	}
	t.c.Treasury -= n
	return nil
}

// WithdrawUpTo removes at most n from the treasury. Returns the amount taken.
func (t *ClanTx) WithdrawUpTo(n int64) int64 {
	if n <= 0 {
		return 0
	}
	taken := min(n, t.c.Treasury)
	t.c.Treasury -= taken
	return taken
}

// UseLicorice consumes one clan licorice if available
func (t *ClanTx) UseLicorice() bool {
	if t.c.Licorice <= 0 {
		return false
	}
	t.c.Licorice--
	return true
}

var errMembershipChanged = errors.New("clan membership changed")

// Clan fetches a clan by name
func (s *Store) Clan(name string) (*model.Clan, error) {
	e, ok := s.clans.lock(name)
	if !ok {
		return nil, model.ErrClanNotFound
	}
	defer e.mu.Unlock()
	return e.val.Clone(), nil
}

// Clans returns a copy of every clan in name order
func (s *Store) Clans() []*model.Clan {
	var out []*model.Clan
	s.clans.each((*model.Clan).Clone, func(_ string, c *model.Clan) {
		out = append(out, c)
	})
	return out
}

// TopClans returns up to n clans ordered by treasury, highest first
func (s *Store) TopClans(n int) []*model.Clan {
	clans := s.Clans()
	slices.SortStableFunc(clans, func(a, b *model.Clan) int {
		if c := cmp.Compare(b.Treasury, a.Treasury); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if n > 0 && len(clans) > n {
		clans = clans[:n]
	}
	return clans
}

// UpdateClan runs fn on a working copy of the clan and commits it if fn returns nil
func (s *Store) UpdateClan(name string, fn func(tx *ClanTx) error) error {
	e, ok := s.clans.lock(name)
	if !ok {
		return model.ErrClanNotFound
	}
	defer e.mu.Unlock()

	tx := &ClanTx{c: e.val.Clone()}
	if err := fn(tx); err != nil {
		return err
	}
	e.val = tx.c
	s.changed()
	return nil
}

// UpdateClans locks two distinct clans in name order and commits both if fn returns nil
func (s *Store) UpdateClans(a, b string, fn func(a, b *ClanTx) error) error {
	if a == b {
		return model.ErrSelfTargetForbidden
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	e1, ok := s.clans.lock(first)
	if !ok {
		return model.ErrClanNotFound
	}
	defer e1.mu.Unlock()
	e2, ok := s.clans.lock(second)
	if !ok {
		return model.ErrClanNotFound
	}
	defer e2.mu.Unlock()

	tx1 := &ClanTx{c: e1.val.Clone()}
	tx2 := &ClanTx{c: e2.val.Clone()}
	txA, txB := tx1, tx2
	if first != a {
		txA, txB = tx2, tx1
	}
	if err := fn(txA, txB); err != nil {
		return err
	}
	e1.val = tx1.c
	e2.val = tx2.c
	s.changed()
	return nil
}

// ClanName builds the display name for a clan from a base name,
// trimmed and truncated to the configured length.
func (s *Store) ClanName(base string) (string, error) {
	base = strings.TrimSpace(base)
	if runes := []rune(base); s.cfg.NameMaxRunes > 0 && len(runes) > s.cfg.NameMaxRunes {
		base = strings.TrimSpace(string(runes[:s.cfg.NameMaxRunes]))
	}
	if base == "" {
		return "", model.ErrInvalidName
	}
	return "Clan " + base, nil
}

// CreateClan charges the owner cost and creates a clan under the first free
// name of "Clan <base>", "Clan <base> 1", "Clan <base> 2", ...
func (s *Store) CreateClan(owner model.PlayerID, base string, cost int64) (*model.Clan, error) {
	name, err := s.ClanName(base)
	if err != nil {
		return nil, err
	}

	var created *model.Clan
	err = s.UpdatePlayer(owner, func(tx *PlayerTx) error {
		p := tx.Player()
		if p.Clan != "" {
			return model.ErrAlreadyInClan
		}
		if err := tx.Debit(cost); err != nil {
			return err
		}
		for i := 0; ; i++ {
			candidate := name
			if i > 0 {
				candidate = fmt.Sprintf("%s %d", name, i)
			}
			clan := &model.Clan{Name: candidate, Owner: owner, Members: []model.PlayerID{}}
			if s.clans.insertIfAbsent(candidate, clan) {
				created = clan.Clone()
				break
			}
		}
		p.Clan = created.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("clan created",
		slog.String("clan", created.Name),
		slog.String("owner", string(owner)))
	return created, nil
}

// JoinClan adds a player to a clan
func (s *Store) JoinClan(id model.PlayerID, name string) (*model.Clan, error) {
	var joined *model.Clan
	err := s.UpdatePlayer(id, func(tx *PlayerTx) error {
		p := tx.Player()
		if p.Clan != "" {
			return model.ErrAlreadyInClan
		}
		e, ok := s.clans.lock(name)
		if !ok {
			return model.ErrClanNotFound
		}
		defer e.mu.Unlock()

		if e.val.HasPlayer(id) {
			return model.ErrAlreadyInClan
		}
		if s.cfg.MaxClanSize > 0 && e.val.Size() >= s.cfg.MaxClanSize {
			return model.ErrClanFull
		}
		c := e.val.Clone()
		c.Members, _ = model.InsertSorted(c.Members, id)
		e.val = c
		joined = c.Clone()
		p.Clan = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// LeaveClan removes a member from their clan. The owner cannot leave.
func (s *Store) LeaveClan(id model.PlayerID) (string, error) {
	var left string
	err := s.UpdatePlayer(id, func(tx *PlayerTx) error {
		p := tx.Player()
		if p.Clan == "" {
			return model.ErrNotInClan
		}
		left = p.Clan
		e, ok := s.clans.lock(p.Clan)
		if !ok {
			// Stale reference to a clan that no longer exists
			p.Clan = ""
			return nil
		}
		defer e.mu.Unlock()

		if e.val.Owner == id {
			return model.ErrOwnerCannotLeave
		}
		c := e.val.Clone()
		c.Members, _ = model.RemoveSorted(c.Members, id)
		e.val = c
		p.Clan = ""
		return nil
	})
	if err != nil {
		return "", err
	}
	return left, nil
}

// DisbandClan deletes the clan owned by the given player and clears every
// member's clan reference. Returns the clan name.
func (s *Store) DisbandClan(owner model.PlayerID) (string, error) {
	p := s.Player(owner)
	if p.Clan == "" {
		return "", model.ErrNotInClan
	}
	if err := s.deleteClan(p.Clan, owner); err != nil {
		return "", err
	}
	return p.Clan, nil
}

// DeleteClan deletes a clan by name regardless of owner
func (s *Store) DeleteClan(name string) error {
	return s.deleteClan(name, "")
}

func (s *Store) deleteClan(name string, owner model.PlayerID) error {
	for {
		c, err := s.Clan(name)
		if err != nil {
			return err
		}
		if owner != "" && c.Owner != owner {
			return model.ErrNotClanOwner
		}
		players := c.AllPlayers()
		slices.Sort(players)

		err = s.UpdatePlayers(players, func(txs map[model.PlayerID]*PlayerTx) error {
			e, ok := s.clans.lock(name)
			if !ok {
				return model.ErrClanNotFound
			}
			defer e.mu.Unlock()

			current := e.val.AllPlayers()
			slices.Sort(current)
			if !slices.Equal(current, players) {
				return errMembershipChanged
			}
			if owner != "" && e.val.Owner != owner {
				return model.ErrNotClanOwner
			}
			for _, tx := range txs {
				if tx.Player().Clan == name {
					tx.Player().Clan = ""
				}
			}
			s.clans.remove(name, e)
			return nil
		})
		if errors.Is(err, errMembershipChanged) {
			continue
		}
		return err
	}
}

// UpdateMember runs fn on a player and the clan they belong to, locked in
// player then clan order. Credits made through the player transaction go to
// the clan transaction directly.
func (s *Store) UpdateMember(id model.PlayerID, fn func(p *PlayerTx, c *ClanTx) error) error {
	pe, _ := s.players.lockOrCreate(id, s.newPlayer(id))
	defer pe.mu.Unlock()

	ptx := &PlayerTx{p: pe.val.Clone()}
	ptx.p.Rollover(s.Today())
	if ptx.p.Clan == "" {
		return model.ErrNotInClan
	}
	ce, ok := s.clans.lock(ptx.p.Clan)
	if !ok {
		return model.ErrClanNotFound
	}
	defer ce.mu.Unlock()

	ttx := &ClanTx{c: ce.val.Clone()}
	if err := fn(ptx, ttx); err != nil {
		return err
	}
	ttx.Deposit(ptx.clanCredit)
	pe.val = ptx.p
	ce.val = ttx.c
	s.changed()
	return nil
}
