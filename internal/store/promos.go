package store

import (
	"strings"

	"github.com/mcoot/candyledger/internal/model"
)

// NormalizePromoCode returns the canonical (upper-case) form of a code
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Promo fetches a promo code
func (s *Store) Promo(code string) (*model.Promo, error) {
	e, ok := s.promos.lock(NormalizePromoCode(code))
	if !ok {
		return nil, model.ErrPromoNotFound
	}
	defer e.mu.Unlock()
	return e.val.Clone(), nil
}

// Promos returns every promo code in code order
func (s *Store) Promos() []*model.Promo {
	var out []*model.Promo
	s.promos.each((*model.Promo).Clone, func(_ string, p *model.Promo) {
		out = append(out, p)
	})
	return out
}

// UpsertPromo creates a promo code or updates its reward and usage limit,
// keeping the existing redemption list.
func (s *Store) UpsertPromo(code string, reward int64, maxUses int) (*model.Promo, error) {
	code = NormalizePromoCode(code)
	if code == "" {
		return nil, model.ErrInvalidName
	}
	if reward <= 0 || maxUses < 0 {
		return nil, model.ErrInvalidAmount
	}

	e, _ := s.promos.lockOrCreate(code, func() *model.Promo {
		return &model.Promo{Code: code, RedeemedBy: []model.PlayerID{}}
	})
	defer e.mu.Unlock()

	p := e.val.Clone()
	p.Reward = reward
	p.MaxUses = maxUses
	e.val = p
	s.changed()
	return p.Clone(), nil
}

// DeletePromo removes a promo code
func (s *Store) DeletePromo(code string) error {
	code = NormalizePromoCode(code)
	e, ok := s.promos.lock(code)
	if !ok {
		return model.ErrPromoNotFound
	}
	defer e.mu.Unlock()
	s.promos.remove(code, e)
	s.changed()
	return nil
}

// RedeemPromo credits the promo reward to the player and records the
// redemption. Each player can redeem a code once.
func (s *Store) RedeemPromo(code string, id model.PlayerID) (*model.Promo, error) {
	code = NormalizePromoCode(code)
	var redeemed *model.Promo
	err := s.UpdatePlayer(id, func(tx *PlayerTx) error {
		e, ok := s.promos.lock(code)
		if !ok {
			return model.ErrPromoNotFound
		}
		defer e.mu.Unlock()

		if e.val.Redeemed(id) {
			return model.ErrPromoAlreadyRedeemed
		}
		if e.val.Exhausted() {
			return model.ErrPromoExhausted
		}
		p := e.val.Clone()
		p.RedeemedBy, _ = model.InsertSorted(p.RedeemedBy, id)
		e.val = p
		redeemed = p.Clone()
		tx.Credit(p.Reward)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return redeemed, nil
}
