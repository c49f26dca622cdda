package challenge

import (
	"log/slog"

	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/store"
)

// Challenge names
const (
	Steal = "steal"
	Give  = "give"
	Buy   = "buy"
)

// Config holds challenge thresholds and rewards
type Config struct {
	StealTarget int64
	StealReward int64 // candy
	GiveTarget  int64
	GiveReward  int64 // candy
	BuyTarget   int64
	BuyLicorice int64 // licorice
}

// DefaultConfig returns the standard daily challenges
func DefaultConfig() Config {
	return Config{
		StealTarget: 3,
		StealReward: 20,
		GiveTarget:  50,
		GiveReward:  30,
		BuyTarget:   1,
		BuyLicorice: 1,
	}
}

// Progress is the state of one challenge
type Progress struct {
	Name       string `json:"name"`
	Count      int64  `json:"count"`
	Target     int64  `json:"target"`
	Reward     int64  `json:"reward"`
	RewardKind string `json:"reward_kind"`
	Claimable  bool   `json:"claimable"`
}

// ClaimResult lists what a claim paid out
type ClaimResult struct {
	Claimed  []string `json:"claimed"`
	Candy    int64    `json:"candy"`
	Licorice int64    `json:"licorice"`
	Balance  int64    `json:"balance"`
}

// Service tracks daily challenge progress and pays out rewards
type Service struct {
	cfg     Config
	store   *store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a challenge service
func New(cfg Config, st *store.Store, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		store:   st,
		metrics: m,
		logger:  logger.With(slog.String("component", "challenge")),
	}
}

// RecordSteal counts a steal on a player record inside a store transaction
func RecordSteal(p *model.Player) {
	p.Challenges.Steal++
}

// RecordGive counts currency given on a player record inside a store transaction
func RecordGive(p *model.Player, amount int64) {
	p.Challenges.Give += amount
}

// RecordBuy counts a purchase on a player record inside a store transaction
func RecordBuy(p *model.Player) {
	p.Challenges.Buy++
}

// Status reports progress on every challenge
func (s *Service) Status(id model.PlayerID) []Progress {
	return s.progress(s.store.Player(id))
}

func (s *Service) progress(p *model.Player) []Progress {
	return []Progress{
		{Name: Steal, Count: p.Challenges.Steal, Target: s.cfg.StealTarget, Reward: s.cfg.StealReward, RewardKind: "candy",
			Claimable: p.Challenges.Steal >= s.cfg.StealTarget},
		{Name: Give, Count: p.Challenges.Give, Target: s.cfg.GiveTarget, Reward: s.cfg.GiveReward, RewardKind: "candy",
			Claimable: p.Challenges.Give >= s.cfg.GiveTarget},
		{Name: Buy, Count: p.Challenges.Buy, Target: s.cfg.BuyTarget, Reward: s.cfg.BuyLicorice, RewardKind: "licorice",
			Claimable: p.Challenges.Buy >= s.cfg.BuyTarget},
	}
}

// Claim pays out every completed challenge and resets its counter.
// Challenges that are not complete are left untouched.
func (s *Service) Claim(id model.PlayerID) (*ClaimResult, error) {
	result := &ClaimResult{Claimed: []string{}}
	err := s.store.UpdatePlayer(id, func(tx *store.PlayerTx) error {
		p := tx.Player()
		if p.Challenges.Steal >= s.cfg.StealTarget {
			tx.Credit(s.cfg.StealReward)
			result.Candy += s.cfg.StealReward
			p.Challenges.Steal = 0
			result.Claimed = append(result.Claimed, Steal)
		}
		if p.Challenges.Give >= s.cfg.GiveTarget {
			tx.Credit(s.cfg.GiveReward)
			result.Candy += s.cfg.GiveReward
			p.Challenges.Give = 0
			result.Claimed = append(result.Claimed, Give)
		}
		if p.Challenges.Buy >= s.cfg.BuyTarget {
			p.Licorice += s.cfg.BuyLicorice
			result.Licorice += s.cfg.BuyLicorice
			p.Challenges.Buy = 0
			result.Claimed = append(result.Claimed, Buy)
		}
		if len(result.Claimed) == 0 {
			return model.ErrNothingToClaim
		}
		result.Balance = p.Balance
		return nil
	})
	s.metrics.Observe("challenge_claim", err)
	if err != nil {
		return nil, err
	}
	s.metrics.Mint("challenge", result.Candy)
	s.logger.Info("challenges claimed",
		slog.String("player", string(id)),
		slog.Any("claimed", result.Claimed),
		slog.Int64("candy", result.Candy))
	return result, nil
}
