package cooldown

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/dependencies/mocks"
)

type LedgerSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	ledger *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC))
	s.ledger = New(s.clock)
}

func (s *LedgerSuite) TestFirstUseSucceeds() {
	remaining, ok := s.ledger.TryConsume("1", KindSteal, 10*time.Minute)
	s.True(ok)
	s.Zero(remaining)
}

func (s *LedgerSuite) TestSecondUseInsideWindowDenied() {
	_, ok := s.ledger.TryConsume("1", KindSteal, 10*time.Minute)
	s.Require().True(ok)

	s.clock.Advance(4 * time.Minute)
	remaining, ok := s.ledger.TryConsume("1", KindSteal, 10*time.Minute)
	s.False(ok)
	s.Equal(6*time.Minute, remaining)
}

func (s *LedgerSuite) TestUseAfterWindowSucceeds() {
	_, _ = s.ledger.TryConsume("1", KindSteal, 10*time.Minute)
	s.clock.Advance(10 * time.Minute)

	_, ok := s.ledger.TryConsume("1", KindSteal, 10*time.Minute)
	s.True(ok)
}

func (s *LedgerSuite) TestKindsAndActorsAreIndependent() {
	_, _ = s.ledger.TryConsume("1", KindSteal, time.Hour)

	_, ok := s.ledger.TryConsume("1", KindClanWar, time.Hour)
	s.True(ok)
	_, ok = s.ledger.TryConsume("2", KindSteal, time.Hour)
	s.True(ok)
}

func (s *LedgerSuite) TestRemainingDoesNotStamp() {
	s.Zero(s.ledger.Remaining("1", KindSteal, time.Hour))
	_, ok := s.ledger.TryConsume("1", KindSteal, time.Hour)
	s.True(ok)
	s.Equal(time.Hour, s.ledger.Remaining("1", KindSteal, time.Hour))
}

func (s *LedgerSuite) TestConcurrentAttemptsAdmitExactlyOne() {
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.ledger.TryConsume("1", KindSteal, time.Minute); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), wins.Load())
}

func (s *LedgerSuite) TestResetAllowsImmediateUse() {
	_, _ = s.ledger.TryConsume("1", KindSteal, time.Hour)
	s.True(s.ledger.Reset("1", KindSteal))
	s.False(s.ledger.Reset("1", KindSteal))
	_, ok := s.ledger.TryConsume("1", KindSteal, time.Hour)
	s.True(ok)
}

func (s *LedgerSuite) TestParseKind() {
	k, ok := ParseKind("clan_war")
	s.True(ok)
	s.Equal(KindClanWar, k)
	_, ok = ParseKind("daily")
	s.False(ok)
}

func (s *LedgerSuite) TestPruneDropsOldStamps() {
	_, _ = s.ledger.TryConsume("1", KindSteal, time.Minute)
	s.clock.Advance(time.Hour)
	_, _ = s.ledger.TryConsume("2", KindSteal, time.Minute)

	s.Equal(1, s.ledger.Prune(30*time.Minute))
	s.Equal(time.Minute, s.ledger.Remaining("2", KindSteal, time.Minute))
}

func (s *LedgerSuite) TestActiveCountsByKind() {
	s.ledger.TryConsume("1", KindSteal, time.Minute)
	s.ledger.TryConsume("2", KindSteal, time.Minute)
	s.ledger.TryConsume("Clan A", KindClanWar, time.Minute)

	s.Equal(2, s.ledger.Active(KindSteal))
	s.Equal(1, s.ledger.Active(KindClanWar))
}
