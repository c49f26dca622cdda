package model

import "slices"

// Promo is a redeemable promo code
type Promo struct {
	Code       string     `json:"code"`
	Reward     int64      `json:"reward"`
	RedeemedBy []PlayerID `json:"redeemed_by"`
	MaxUses    int        `json:"max_uses,omitempty"` // 0 means unlimited
}

// Redeemed reports whether the player has already used the code
func (p *Promo) Redeemed(id PlayerID) bool {
	return ContainsSorted(p.RedeemedBy, id)
}

// Exhausted reports whether the code has reached its usage limit
func (p *Promo) Exhausted() bool {
	return p.MaxUses > 0 && len(p.RedeemedBy) >= p.MaxUses
}

// Clone returns a deep copy of the promo
func (p *Promo) Clone() *Promo {
	cp := *p
	cp.RedeemedBy = slices.Clone(p.RedeemedBy)
	if cp.RedeemedBy == nil {
		cp.RedeemedBy = []PlayerID{}
	}
	return &cp
}
