package response

import (
	"github.com/mcoot/candyledger/internal/model"
)

// Clan represents a clan in API responses
type Clan struct {
	Name     string           `json:"name"`
	Owner    model.PlayerID   `json:"owner"`
	Members  []model.PlayerID `json:"members"`
	Size     int              `json:"size"`
	Treasury int64            `json:"treasury"`
	Licorice int64            `json:"licorice"`
}

// ClanFromModel converts a model.Clan to a response Clan
func ClanFromModel(c *model.Clan) Clan {
	members := c.Members
	if members == nil {
		members = []model.PlayerID{}
	}
	return Clan{
		Name:     c.Name,
		Owner:    c.Owner,
		Members:  members,
		Size:     c.Size(),
		Treasury: c.Treasury,
		Licorice: c.Licorice,
	}
}

// Promo represents a promo code in API responses
type Promo struct {
	Code    string `json:"code"`
	Reward  int64  `json:"reward"`
	Uses    int    `json:"uses"`
	MaxUses int    `json:"max_uses,omitempty"`
}

// PromoFromModel converts a model.Promo to a response Promo
func PromoFromModel(p *model.Promo) Promo {
	return Promo{
		Code:    p.Code,
		Reward:  p.Reward,
		Uses:    len(p.RedeemedBy),
		MaxUses: p.MaxUses,
	}
}

// PromosFromModel converts a slice of promos
func PromosFromModel(promos []*model.Promo) []Promo {
	out := make([]Promo, 0, len(promos))
	for _, p := range promos {
		out = append(out, PromoFromModel(p))
	}
	return out
}

// ClanLeft is returned when a player leaves or disbands a clan
type ClanLeft struct {
	Clan string `json:"clan"`
}
