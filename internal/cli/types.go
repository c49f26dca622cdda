package cli

import "time"

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// DailyResult response type
type DailyResult struct {
	Reward    int64     `json:"reward"`
	Balance   int64     `json:"balance"`
	NextClaim time.Time `json:"next_claim"`
}

// BalanceResult response type
type BalanceResult struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
}

// GiveResult response type
type GiveResult struct {
	Target  string `json:"target"`
	Amount  int64  `json:"amount"`
	Balance int64  `json:"balance"`
}

// Profile response type
type Profile struct {
	Player      string `json:"player"`
	Balance     int64  `json:"balance"`
	TotalEarned int64  `json:"total_earned"`
	Costume     string `json:"costume,omitempty"`
	Bonus       int64  `json:"bonus"`
	Licorice    int64  `json:"licorice"`
	DuelWins    int64  `json:"duel_wins"`
	Clan        string `json:"clan,omitempty"`
}

// PlayerRank response type
type PlayerRank struct {
	Rank        int    `json:"rank"`
	Player      string `json:"player"`
	TotalEarned int64  `json:"total_earned"`
}

// PlayerLeaderboard is the players leaderboard
type PlayerLeaderboard []PlayerRank

// ClanRank response type
type ClanRank struct {
	Rank     int    `json:"rank"`
	Clan     string `json:"clan"`
	Treasury int64  `json:"treasury"`
	Members  int    `json:"members"`
}

// ClanLeaderboard is the clans leaderboard
type ClanLeaderboard []ClanRank

// ChallengeProgress response type
type ChallengeProgress struct {
	Name       string `json:"name"`
	Count      int64  `json:"count"`
	Target     int64  `json:"target"`
	Reward     int64  `json:"reward"`
	RewardKind string `json:"reward_kind"`
	Claimable  bool   `json:"claimable"`
}

// Challenges is the list of today's challenges
type Challenges []ChallengeProgress

// ClaimResult response type
type ClaimResult struct {
	Claimed  []string `json:"claimed"`
	Candy    int64    `json:"candy"`
	Licorice int64    `json:"licorice"`
	Balance  int64    `json:"balance"`
}

// PromoResult response type
type PromoResult struct {
	Code    string `json:"code"`
	Reward  int64  `json:"reward"`
	Balance int64  `json:"balance"`
}

// Costume response type
type Costume struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Bonus  int64  `json:"bonus"`
	Price  int64  `json:"price"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Potion response type
type Potion struct {
	Kind     string        `json:"kind"`
	Name     string        `json:"name"`
	Bonus    int64         `json:"bonus"`
	Price    int64         `json:"price"`
	Duration time.Duration `json:"duration"`
}

// ShopCostume response type
type ShopCostume struct {
	Costume
	Owned bool `json:"owned"`
}

// Shop response type
type Shop struct {
	Costumes          []ShopCostume `json:"costumes"`
	Potions           []Potion      `json:"potions"`
	LicoricePrice     int64         `json:"licorice_price"`
	ClanLicoricePrice int64         `json:"clan_licorice_price"`
	ClanLicorice      bool          `json:"clan_licorice_available"`
}

// PurchaseResult response type
type PurchaseResult struct {
	Item     string `json:"item"`
	Price    int64  `json:"price"`
	Balance  int64  `json:"balance"`
	Equipped string `json:"equipped,omitempty"`
}

// PotionEffect response type
type PotionEffect struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Bonus     int64      `json:"bonus,omitempty"`
}

// InventoryCostume response type
type InventoryCostume struct {
	Costume
	Equipped bool `json:"equipped"`
}

// InventoryPotion response type
type InventoryPotion struct {
	Potion
	Count int `json:"count"`
}

// Inventory response type
type Inventory struct {
	Costumes      []InventoryCostume      `json:"costumes"`
	Potions       []InventoryPotion       `json:"potions"`
	ActivePotions map[string]PotionEffect `json:"active_potions"`
	Licorice      int64                   `json:"licorice"`
	ClanLicorice  *int64                  `json:"clan_licorice,omitempty"`
}

// UseResult response type
type UseResult struct {
	Item     string        `json:"item"`
	Equipped string        `json:"equipped,omitempty"`
	Effect   *PotionEffect `json:"effect,omitempty"`
}

// StealInitiated response type
type StealInitiated struct {
	Token      string    `json:"token"`
	Initiator  string    `json:"initiator"`
	Target     string    `json:"target"`
	ExpiresAt  time.Time `json:"expires_at"`
	Multiplier int64     `json:"multiplier"`
}

// StealResolution response type
type StealResolution struct {
	Token      string        `json:"token"`
	Outcome    string        `json:"outcome"`
	Initiator  string        `json:"initiator"`
	Target     string        `json:"target"`
	Taken      int64         `json:"taken"`
	Gained     int64         `json:"gained"`
	Multiplier int64         `json:"multiplier"`
	Muted      time.Duration `json:"muted,omitempty"`
}

// DuelInitiated response type
type DuelInitiated struct {
	Token     string    `json:"token"`
	Initiator string    `json:"initiator"`
	Target    string    `json:"target"`
	Ante      int64     `json:"ante"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DuelResolution response type
type DuelResolution struct {
	Token           string `json:"token"`
	Initiator       string `json:"initiator"`
	Target          string `json:"target"`
	InitiatorChoice string `json:"initiator_choice"`
	TargetChoice    string `json:"target_choice"`
	Tie             bool   `json:"tie"`
	Winner          string `json:"winner,omitempty"`
	Payout          int64  `json:"payout"`
}

// Clan response type
type Clan struct {
	Name     string   `json:"name"`
	Owner    string   `json:"owner"`
	Members  []string `json:"members"`
	Size     int      `json:"size"`
	Treasury int64    `json:"treasury"`
	Licorice int64    `json:"licorice"`
}

// ClanLeft response type
type ClanLeft struct {
	Clan string `json:"clan"`
}

// RaidResult response type
type RaidResult struct {
	Attacker   string  `json:"attacker"`
	Target     string  `json:"target"`
	Outcome    string  `json:"outcome"`
	Cost       int64   `json:"cost"`
	Chance     float64 `json:"chance"`
	Stolen     int64   `json:"stolen"`
	Multiplier int64   `json:"multiplier"`
}

// AdjustResult response type
type AdjustResult struct {
	Target  string `json:"target"`
	Amount  int64  `json:"amount"`
	Balance int64  `json:"balance"`
}

// Promo response type
type Promo struct {
	Code    string `json:"code"`
	Reward  int64  `json:"reward"`
	Uses    int    `json:"uses"`
	MaxUses int    `json:"max_uses"`
}

// Promos is a list of promo codes
type Promos []Promo

// CooldownReset response type
type CooldownReset struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Cleared bool   `json:"cleared"`
}

// Stats response type
type Stats struct {
	Players        int `json:"players"`
	Clans          int `json:"clans"`
	Promos         int `json:"promos"`
	Chats          int `json:"chats"`
	Pending        int `json:"pending"`
	ActiveRaids    int `json:"active_raids"`
	RecentStealers int `json:"recent_stealers"`
}
