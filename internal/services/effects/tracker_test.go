package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/model"
)

var (
	finalEvent = time.Date(2025, 10, 31, 21, 0, 0, 0, time.UTC)
	tempBoost  = model.Potion{Kind: model.PotionTempBoost, Bonus: 2, Duration: 30 * time.Minute}
	permBoost  = model.Potion{Kind: model.PotionPermBoost, Bonus: 2}
)

type TrackerSuite struct {
	suite.Suite
	now     time.Time
	tracker *Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerSuite))
}

func (s *TrackerSuite) SetupTest() {
	s.now = time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC)
	s.tracker = New(Config{
		RaidMultiplier:  2,
		FinalEventAt:    finalEvent,
		FinalMultiplier: 5,
	}, model.Catalog{
		Costumes: []model.Costume{{ID: "ghost", Bonus: 3}, {ID: "jason", Bonus: 8}},
	})
}

func (s *TrackerSuite) TestNoEffectsMultiplierIsOne() {
	s.Equal(int64(1), s.tracker.ActiveMultiplier("chat", s.now))
}

func (s *TrackerSuite) TestRaidWindowDoublesInsideWindowOnly() {
	s.tracker.StartRaidWindow("chat", s.now, 30*time.Minute)

	s.Equal(int64(2), s.tracker.ActiveMultiplier("chat", s.now.Add(29*time.Minute)))
	s.Equal(int64(1), s.tracker.ActiveMultiplier("other", s.now))
	s.Equal(int64(1), s.tracker.ActiveMultiplier("chat", s.now.Add(30*time.Minute)))
}

func (s *TrackerSuite) TestEndRaidWindowIsIdempotent() {
	s.tracker.StartRaidWindow("chat", s.now, time.Hour)
	s.True(s.tracker.EndRaidWindow("chat"))
	s.False(s.tracker.EndRaidWindow("chat"))
	s.False(s.tracker.RaidActive("chat", s.now))
}

func (s *TrackerSuite) TestFinalEventMultiplierFromStartInstant() {
	s.Equal(int64(1), s.tracker.ActiveMultiplier("chat", finalEvent.Add(-time.Second)))
	s.Equal(int64(5), s.tracker.ActiveMultiplier("chat", finalEvent))
}

func (s *TrackerSuite) TestRaidAndFinalEventStack() {
	s.tracker.StartRaidWindow("chat", finalEvent, time.Hour)
	s.Equal(int64(10), s.tracker.ActiveMultiplier("chat", finalEvent.Add(time.Minute)))
}

func (s *TrackerSuite) TestActiveRaidsSorted() {
	s.tracker.StartRaidWindow("b", s.now, time.Hour)
	s.tracker.StartRaidWindow("a", s.now, time.Hour)
	s.tracker.StartRaidWindow("old", s.now.Add(-2*time.Hour), time.Hour)

	s.Equal([]model.ChatID{"a", "b"}, s.tracker.ActiveRaids(s.now))
}

func (s *TrackerSuite) TestCostumeBonus() {
	p := model.NewPlayer("1", 10)
	p.Costume = "jason"
	s.Equal(int64(8), s.tracker.PlayerBonus(p, s.now))
}

func (s *TrackerSuite) TestTempBoostExpiresAndIsRemoved() {
	p := model.NewPlayer("1", 10)
	s.tracker.ApplyPotion(p, tempBoost, s.now)

	s.Equal(int64(2), s.tracker.PlayerBonus(p, s.now.Add(29*time.Minute)))
	s.Equal(int64(0), s.tracker.PlayerBonus(p, s.now.Add(30*time.Minute)))
	s.NotContains(p.ActivePotions, model.PotionTempBoost)
}

func (s *TrackerSuite) TestPermBoostAccumulates() {
	p := model.NewPlayer("1", 10)
	s.tracker.ApplyPotion(p, permBoost, s.now)
	s.tracker.ApplyPotion(p, permBoost, s.now)

	s.Equal(int64(4), s.tracker.PlayerBonus(p, s.now.Add(1000*time.Hour)))
}

func (s *TrackerSuite) TestBonusesAdd() {
	p := model.NewPlayer("1", 10)
	p.Costume = "ghost"
	s.tracker.ApplyPotion(p, tempBoost, s.now)
	s.tracker.ApplyPotion(p, permBoost, s.now)

	s.Equal(int64(7), s.tracker.PlayerBonus(p, s.now))
}
