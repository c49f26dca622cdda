package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/dependencies/mocks"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/store"
	"github.com/mcoot/candyledger/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	store   *store.Store
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC))
	s.store = store.New(store.DefaultConfig(), s.clock, logger)
	s.service = New(DefaultConfig(), s.store, metrics.New(), logger)
}

func (s *ServiceSuite) setProgress(steal, give, buy int64) {
	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *store.PlayerTx) error {
		tx.Player().Challenges = model.ChallengeProgress{Steal: steal, Give: give, Buy: buy}
		return nil
	}))
}

func (s *ServiceSuite) TestRecordHelpers() {
	p := model.NewPlayer("1", 0)
	RecordSteal(p)
	RecordGive(p, 25)
	RecordBuy(p)
	s.Equal(model.ChallengeProgress{Steal: 1, Give: 25, Buy: 1}, p.Challenges)
}

func (s *ServiceSuite) TestStatusReportsClaimable() {
	s.setProgress(3, 10, 0)

	status := s.service.Status("1")
	s.Require().Len(status, 3)
	s.True(status[0].Claimable)
	s.False(status[1].Claimable)
	s.False(status[2].Claimable)
}

func (s *ServiceSuite) TestPartialClaim() {
	s.setProgress(3, 40, 1)

	result, err := s.service.Claim("1")
	s.Require().NoError(err)
	s.Equal([]string{Steal, Buy}, result.Claimed)
	s.Equal(int64(20), result.Candy)
	s.Equal(int64(1), result.Licorice)

	p := s.store.Player("1")
	s.Equal(int64(30), p.Balance)
	s.Equal(int64(30), p.TotalEarned)
	s.Equal(int64(1), p.Licorice)
	s.Equal(model.ChallengeProgress{Steal: 0, Give: 40, Buy: 0}, p.Challenges)
}

func (s *ServiceSuite) TestClaimEverything() {
	s.setProgress(5, 60, 2)

	result, err := s.service.Claim("1")
	s.Require().NoError(err)
	s.Equal(int64(50), result.Candy)
	s.Equal(int64(60), result.Balance)
}

func (s *ServiceSuite) TestClaimNothing() {
	s.setProgress(2, 49, 0)

	_, err := s.service.Claim("1")
	s.ErrorIs(err, model.ErrNothingToClaim)
	s.Equal(int64(10), s.store.Player("1").Balance)
}

func (s *ServiceSuite) TestProgressResetsNextDay() {
	s.setProgress(3, 0, 0)
	s.clock.Advance(24 * time.Hour)

	_, err := s.service.Claim("1")
	s.ErrorIs(err, model.ErrNothingToClaim)
}
