package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/candyledger/internal/model"
)

// Tuning holds the game balance values. Every field has a default, and a
// YAML tuning file only needs to list the values it overrides.
type Tuning struct {
	StartingBalance int64 `yaml:"starting_balance"`
	LeaderboardSize int   `yaml:"leaderboard_size"`

	Daily      DailyTuning     `yaml:"daily"`
	Steal      StealTuning     `yaml:"steal"`
	Duel       DuelTuning      `yaml:"duel"`
	Clan       ClanTuning      `yaml:"clan"`
	Shop       ShopTuning      `yaml:"shop"`
	Events     EventTuning     `yaml:"events"`
	Challenges ChallengeTuning `yaml:"challenges"`
	Catalog    model.Catalog   `yaml:"catalog"`
}

type DailyTuning struct {
	Reward   int64         `yaml:"reward"`
	Cooldown time.Duration `yaml:"cooldown"`
}

type StealTuning struct {
	Base          int64         `yaml:"base"`
	Cooldown      time.Duration `yaml:"cooldown"`
	ChoiceTimeout time.Duration `yaml:"choice_timeout"`
	MuteDuration  time.Duration `yaml:"mute_duration"`
}

type DuelTuning struct {
	Ante          int64         `yaml:"ante"`
	TieBonus      int64         `yaml:"tie_bonus"`
	ChoiceTimeout time.Duration `yaml:"choice_timeout"`
}

type ClanTuning struct {
	CreateCost    int64         `yaml:"create_cost"`
	MaxSize       int           `yaml:"max_size"`
	NameMaxRunes  int           `yaml:"name_max_runes"`
	WarCost       int64         `yaml:"war_cost"`
	WarCooldown   time.Duration `yaml:"war_cooldown"`
	RaidBase      int64         `yaml:"raid_base"`
	SuccessFactor float64       `yaml:"success_factor"`
}

type ShopTuning struct {
	LicoricePrice     int64 `yaml:"licorice_price"`
	ClanLicoricePrice int64 `yaml:"clan_licorice_price"`
}

type EventTuning struct {
	RaidMultiplier  int64         `yaml:"raid_multiplier"`
	RaidDuration    time.Duration `yaml:"raid_duration"`
	RaidSchedule    string        `yaml:"raid_schedule"`
	FinalEventAt    time.Time     `yaml:"final_event_at"`
	FinalMultiplier int64         `yaml:"final_multiplier"`
}

type ChallengeTuning struct {
	StealTarget int64 `yaml:"steal_target"`
	StealReward int64 `yaml:"steal_reward"`
	GiveTarget  int64 `yaml:"give_target"`
	GiveReward  int64 `yaml:"give_reward"`
	BuyTarget   int64 `yaml:"buy_target"`
	BuyLicorice int64 `yaml:"buy_licorice"`
}

// DefaultTuning returns the standard game balance
func DefaultTuning() Tuning {
	return Tuning{
		StartingBalance: 10,
		LeaderboardSize: 5,
		Daily: DailyTuning{
			Reward:   10,
			Cooldown: 24 * time.Hour,
		},
		Steal: StealTuning{
			Base:          5,
			Cooldown:      10 * time.Minute,
			ChoiceTimeout: 120 * time.Second,
			MuteDuration:  2 * time.Minute,
		},
		Duel: DuelTuning{
			Ante:          10,
			TieBonus:      10,
			ChoiceTimeout: 120 * time.Second,
		},
		Clan: ClanTuning{
			CreateCost:    100,
			MaxSize:       20,
			NameMaxRunes:  20,
			WarCost:       50,
			WarCooldown:   10 * time.Minute,
			RaidBase:      20,
			SuccessFactor: 0.6,
		},
		Shop: ShopTuning{
			LicoricePrice:     15,
			ClanLicoricePrice: 30,
		},
		Events: EventTuning{
			RaidMultiplier:  2,
			RaidDuration:    30 * time.Minute,
			RaidSchedule:    "@every 3h",
			FinalEventAt:    time.Date(2025, time.October, 31, 21, 0, 0, 0, time.UTC),
			FinalMultiplier: 5,
		},
		Challenges: ChallengeTuning{
			StealTarget: 3,
			StealReward: 20,
			GiveTarget:  50,
			GiveReward:  30,
			BuyTarget:   1,
			BuyLicorice: 1,
		},
		Catalog: model.Catalog{
			Costumes: []model.Costume{
				{ID: "ghost", Name: "Ghost", Bonus: 3, Price: 40},
				{ID: "vampire", Name: "Vampire", Bonus: 5, Price: 70},
				{ID: "freddy", Name: "Freddy Krueger", Bonus: 6, Price: 90},
				{ID: "jason", Name: "Jason Voorhees", Bonus: 8, Price: 100},
				{ID: "barry", Name: "Barry", Bonus: 9, Price: 0, Hidden: true},
			},
			Potions: []model.Potion{
				{Kind: model.PotionTempBoost, Name: "Candy rush", Bonus: 2, Price: 50, Duration: 30 * time.Minute},
				{Kind: model.PotionPermBoost, Name: "Sugar heart", Bonus: 2, Price: 100},
			},
		},
	}
}

// LoadTuning reads a YAML tuning file over the defaults. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}
