package testutil

import (
	"time"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/storage"
)

// SampleSnapshot returns a snapshot with one record in every family
func SampleSnapshot() *storage.Snapshot {
	claimed := time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC)
	boostUntil := claimed.Add(30 * time.Minute)

	snap := storage.NewSnapshot()
	snap.Players["100"] = &model.Player{
		ID:            "100",
		Balance:       42,
		TotalEarned:   90,
		LastClaim:     &claimed,
		Costume:       "ghost",
		OwnedCostumes: []model.CostumeID{"ghost", "vampire"},
		ActivePotions: map[model.PotionKind]model.PotionEffect{
			model.PotionTempBoost: {ExpiresAt: &boostUntil},
			model.PotionPermBoost: {Bonus: 4},
		},
		Potions:       map[model.PotionKind]int{model.PotionTempBoost: 2},
		Licorice:      1,
		Challenges:    model.ChallengeProgress{Steal: 1, Give: 10},
		ChallengeDate: "2025-10-30",
		DuelWins:      3,
		Clan:          "Clan Bats",
	}
	snap.Players["200"] = model.NewPlayer("200", 10)
	snap.Players["200"].Clan = "Clan Bats"
	snap.Clans["Clan Bats"] = &model.Clan{
		Name:     "Clan Bats",
		Owner:    "100",
		Members:  []model.PlayerID{"200"},
		Treasury: 75,
		Licorice: 2,
	}
	snap.Promos["SPOOKY"] = &model.Promo{
		Code:       "SPOOKY",
		Reward:     25,
		RedeemedBy: []model.PlayerID{"200"},
		MaxUses:    10,
	}
	snap.Chats = []model.ChatID{"-1001", "-1002"}
	snap.Pending["tok-1"] = &model.PendingDecision{
		Token:     "tok-1",
		Kind:      model.DecisionDuel,
		Initiator: "100",
		Target:    "200",
		Chat:      "-1001",
		CreatedAt: claimed,
		ExpiresAt: claimed.Add(2 * time.Minute),
		State:     model.DecisionPending,
		Ante:      10,
	}
	return snap
}
