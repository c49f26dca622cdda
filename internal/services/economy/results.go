package economy

import (
	"time"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/cooldown"
)

// DailyResult is returned by a successful daily claim
type DailyResult struct {
	Reward    int64     `json:"reward"`
	Balance   int64     `json:"balance"`
	NextClaim time.Time `json:"next_claim"`
}

// BalanceResult reports a player's currency
type BalanceResult struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
}

// PlayerRank is one leaderboard row
type PlayerRank struct {
	Rank        int            `json:"rank"`
	Player      model.PlayerID `json:"player"`
	TotalEarned int64          `json:"total_earned"`
}

// ClanRank is one clan leaderboard row
type ClanRank struct {
	Rank     int    `json:"rank"`
	Clan     string `json:"clan"`
	Treasury int64  `json:"treasury"`
	Members  int    `json:"members"`
}

// GiveResult is returned by a successful transfer
type GiveResult struct {
	Target  model.PlayerID `json:"target"`
	Amount  int64          `json:"amount"`
	Balance int64          `json:"balance"`
}

// Profile is a public view of a player
type Profile struct {
	Player      model.PlayerID  `json:"player"`
	Balance     int64           `json:"balance"`
	TotalEarned int64           `json:"total_earned"`
	Costume     model.CostumeID `json:"costume,omitempty"`
	Bonus       int64           `json:"bonus"`
	Licorice    int64           `json:"licorice"`
	DuelWins    int64           `json:"duel_wins"`
	Clan        string          `json:"clan,omitempty"`
}

// ShopCostume is a costume offered in the shop
type ShopCostume struct {
	model.Costume
	Owned bool `json:"owned"`
}

// Shop lists everything the actor can buy
type Shop struct {
	Costumes          []ShopCostume  `json:"costumes"`
	Potions           []model.Potion `json:"potions"`
	LicoricePrice     int64          `json:"licorice_price"`
	ClanLicoricePrice int64          `json:"clan_licorice_price"`
	ClanLicorice      bool           `json:"clan_licorice_available"`
}

// PurchaseResult is returned by a successful purchase
type PurchaseResult struct {
	Item     string          `json:"item"`
	Price    int64           `json:"price"`
	Balance  int64           `json:"balance"`
	Equipped model.CostumeID `json:"equipped,omitempty"`
}

// InventoryCostume is an owned costume
type InventoryCostume struct {
	model.Costume
	Equipped bool `json:"equipped"`
}

// InventoryPotion is a stack of unused potions
type InventoryPotion struct {
	model.Potion
	Count int `json:"count"`
}

// Inventory lists what the actor owns
type Inventory struct {
	Costumes      []InventoryCostume                      `json:"costumes"`
	Potions       []InventoryPotion                       `json:"potions"`
	ActivePotions map[model.PotionKind]model.PotionEffect `json:"active_potions"`
	Licorice      int64                                   `json:"licorice"`
	ClanLicorice  *int64                                  `json:"clan_licorice,omitempty"`
}

// UseResult is returned when an item is equipped or consumed
type UseResult struct {
	Item     string              `json:"item"`
	Equipped model.CostumeID     `json:"equipped,omitempty"`
	Effect   *model.PotionEffect `json:"effect,omitempty"`
}

// PromoResult is returned by a successful promo redemption
type PromoResult struct {
	Code    string `json:"code"`
	Reward  int64  `json:"reward"`
	Balance int64  `json:"balance"`
}

// AdjustResult is returned by the admin credit and debit commands
type AdjustResult struct {
	Target  model.PlayerID `json:"target"`
	Amount  int64          `json:"amount"`
	Balance int64          `json:"balance"`
}

// CooldownReset is returned when an admin clears a cooldown
type CooldownReset struct {
	Kind    cooldown.Kind `json:"kind"`
	Subject string        `json:"subject"`
	Cleared bool          `json:"cleared"`
}

// Stats is the admin overview
type Stats struct {
	Players        int `json:"players"`
	Clans          int `json:"clans"`
	Promos         int `json:"promos"`
	Chats          int `json:"chats"`
	Pending        int `json:"pending"`
	ActiveRaids    int `json:"active_raids"`
	RecentStealers int `json:"recent_stealers"`
}
