package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/dependencies/mocks"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	store   *Store
	changes atomic.Int64
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC))
	s.store = New(DefaultConfig(), s.clock, testutil.NopLogger())
	s.changes.Store(0)
	s.store.SetChangeHook(func() { s.changes.Add(1) })
}

// Player tests

func (s *StoreSuite) TestPlayerCreatedWithDefaults() {
	p := s.store.Player("1")

	s.Equal(model.PlayerID("1"), p.ID)
	s.Equal(int64(10), p.Balance)
	s.Equal(int64(10), p.TotalEarned)
	s.Equal("2025-10-30", p.ChallengeDate)
	s.Positive(s.changes.Load())
}

func (s *StoreSuite) TestLookupPlayerNotFound() {
	_, err := s.store.LookupPlayer("nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestFetchRollsOverDailyCounters() {
	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *PlayerTx) error {
		tx.Player().Attacks.Count = 4
		tx.Player().Gives.Count = 20
		tx.Player().Challenges.Steal = 2
		return nil
	}))

	s.clock.Advance(24 * time.Hour)
	p := s.store.Player("1")

	s.Equal(int64(0), p.Attacks.Count)
	s.Equal(int64(0), p.Gives.Count)
	s.Equal(int64(0), p.Challenges.Steal)
	s.Equal("2025-10-31", p.Attacks.Date)
}

func (s *StoreSuite) TestUpdatePlayerCommitsOnlyOnSuccess() {
	s.store.Player("1")

	err := s.store.UpdatePlayer("1", func(tx *PlayerTx) error {
		tx.Credit(100)
		return model.ErrInvalidChoice
	})
	s.ErrorIs(err, model.ErrInvalidChoice)
	s.Equal(int64(10), s.store.Player("1").Balance)
}

func (s *StoreSuite) TestDebitIsStrict() {
	err := s.store.UpdatePlayer("1", func(tx *PlayerTx) error {
		return tx.Debit(11)
	})
	s.ErrorIs(err, model.ErrInsufficientFunds)
	s.Equal(int64(10), s.store.Player("1").Balance)
}

func (s *StoreSuite) TestDebitUpToClamps() {
	var taken int64
	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *PlayerTx) error {
		taken = tx.DebitUpTo(25)
		return nil
	}))
	s.Equal(int64(10), taken)
	s.Equal(int64(0), s.store.Player("1").Balance)
}

func (s *StoreSuite) TestRefundDoesNotCountAsEarnings() {
	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *PlayerTx) error {
		tx.Refund(5)
		return nil
	}))
	p := s.store.Player("1")
	s.Equal(int64(15), p.Balance)
	s.Equal(int64(10), p.TotalEarned)
}

func (s *StoreSuite) TestCreditMirrorsToClanTreasury() {
	clan, err := s.fundedClan("owner", "Pumpkins")
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdatePlayer("owner", func(tx *PlayerTx) error {
		tx.Credit(7)
		return nil
	}))

	c, err := s.store.Clan(clan.Name)
	s.Require().NoError(err)
	s.Equal(int64(7), c.Treasury)
}

func (s *StoreSuite) TestUpdatePlayersIsAllOrNothing() {
	err := s.store.UpdatePlayers([]model.PlayerID{"a", "b"}, func(txs map[model.PlayerID]*PlayerTx) error {
		txs["a"].Credit(5)
		return txs["b"].Debit(50)
	})
	s.ErrorIs(err, model.ErrInsufficientFunds)
	s.Equal(int64(10), s.store.Player("a").Balance)
	s.Equal(int64(10), s.store.Player("b").Balance)
}

func (s *StoreSuite) TestConcurrentTransfersConserveCurrency() {
	ids := []model.PlayerID{"a", "b", "c", "d"}
	for _, id := range ids {
		s.store.Player(id)
	}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		from := ids[i%len(ids)]
		to := ids[(i+1)%len(ids)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.UpdatePlayers([]model.PlayerID{to, from}, func(txs map[model.PlayerID]*PlayerTx) error {
				if err := txs[from].Debit(1); err != nil {
					return err
				}
				txs[to].Refund(1)
				return nil
			})
		}()
	}
	wg.Wait()

	var total int64
	for _, id := range ids {
		p := s.store.Player(id)
		s.GreaterOrEqual(p.Balance, int64(0))
		total += p.Balance
	}
	s.Equal(int64(40), total)
}

func (s *StoreSuite) TestTopPlayersOrderedByTotalEarned() {
	for i, earn := range []int64{5, 50, 20} {
		id := model.PlayerID(fmt.Sprintf("p%d", i))
		s.Require().NoError(s.store.UpdatePlayer(id, func(tx *PlayerTx) error {
			tx.Credit(earn)
			return nil
		}))
	}

	top := s.store.TopPlayers(2)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("p1"), top[0].ID)
	s.Equal(model.PlayerID("p2"), top[1].ID)
}

// Clan tests

func (s *StoreSuite) fundedClan(owner model.PlayerID, base string) (*model.Clan, error) {
	s.Require().NoError(s.store.UpdatePlayer(owner, func(tx *PlayerTx) error {
		tx.Refund(100)
		return nil
	}))
	return s.store.CreateClan(owner, base, 100)
}

func (s *StoreSuite) TestCreateClanChargesOwner() {
	clan, err := s.fundedClan("owner", "Pumpkins")
	s.Require().NoError(err)

	s.Equal("Clan Pumpkins", clan.Name)
	p := s.store.Player("owner")
	s.Equal(int64(10), p.Balance)
	s.Equal("Clan Pumpkins", p.Clan)
}

func (s *StoreSuite) TestCreateClanDisambiguatesName() {
	first, err := s.fundedClan("a", "Bats")
	s.Require().NoError(err)
	second, err := s.fundedClan("b", "Bats")
	s.Require().NoError(err)
	third, err := s.fundedClan("c", "Bats")
	s.Require().NoError(err)

	s.Equal("Clan Bats", first.Name)
	s.Equal("Clan Bats 1", second.Name)
	s.Equal("Clan Bats 2", third.Name)
}

func (s *StoreSuite) TestCreateClanInsufficientFunds() {
	_, err := s.store.CreateClan("poor", "Bats", 100)
	s.ErrorIs(err, model.ErrInsufficientFunds)
	s.Empty(s.store.Clans())
	s.Empty(s.store.Player("poor").Clan)
}

func (s *StoreSuite) TestCreateClanRejectsEmptyName() {
	_, err := s.store.CreateClan("a", "   ", 0)
	s.ErrorIs(err, model.ErrInvalidName)
}

func (s *StoreSuite) TestJoinClanRespectsMaxSize() {
	cfg := DefaultConfig()
	cfg.MaxClanSize = 2
	s.store = New(cfg, s.clock, testutil.NopLogger())

	clan, err := s.fundedClan("owner", "Small")
	s.Require().NoError(err)

	_, err = s.store.JoinClan("m1", clan.Name)
	s.Require().NoError(err)
	_, err = s.store.JoinClan("m2", clan.Name)
	s.ErrorIs(err, model.ErrClanFull)
	s.Empty(s.store.Player("m2").Clan)
}

func (s *StoreSuite) TestJoinClanTwiceFails() {
	clan, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)
	_, err = s.store.JoinClan("m1", clan.Name)
	s.Require().NoError(err)

	_, err = s.store.JoinClan("m1", clan.Name)
	s.ErrorIs(err, model.ErrAlreadyInClan)
}

func (s *StoreSuite) TestOwnerCannotLeave() {
	_, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)

	_, err = s.store.LeaveClan("owner")
	s.ErrorIs(err, model.ErrOwnerCannotLeave)
}

func (s *StoreSuite) TestMemberLeaves() {
	clan, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)
	_, err = s.store.JoinClan("m1", clan.Name)
	s.Require().NoError(err)

	name, err := s.store.LeaveClan("m1")
	s.Require().NoError(err)
	s.Equal(clan.Name, name)

	c, err := s.store.Clan(clan.Name)
	s.Require().NoError(err)
	s.Empty(c.Members)
	s.Empty(s.store.Player("m1").Clan)
}

func (s *StoreSuite) TestDisbandClearsMembers() {
	clan, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)
	for _, m := range []model.PlayerID{"m1", "m2"} {
		_, err = s.store.JoinClan(m, clan.Name)
		s.Require().NoError(err)
	}

	name, err := s.store.DisbandClan("owner")
	s.Require().NoError(err)
	s.Equal(clan.Name, name)

	_, err = s.store.Clan(clan.Name)
	s.ErrorIs(err, model.ErrClanNotFound)
	for _, id := range []model.PlayerID{"owner", "m1", "m2"} {
		s.Empty(s.store.Player(id).Clan)
	}
}

func (s *StoreSuite) TestDisbandByMemberFails() {
	clan, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)
	_, err = s.store.JoinClan("m1", clan.Name)
	s.Require().NoError(err)

	_, err = s.store.DisbandClan("m1")
	s.ErrorIs(err, model.ErrNotClanOwner)
}

func (s *StoreSuite) TestUpdateMemberCreditsClanOnce() {
	clan, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdateMember("owner", func(p *PlayerTx, c *ClanTx) error {
		p.Credit(5)
		c.Clan().Licorice++
		return nil
	}))

	c, err := s.store.Clan(clan.Name)
	s.Require().NoError(err)
	s.Equal(int64(5), c.Treasury)
	s.Equal(int64(1), c.Licorice)
	s.Equal(int64(15), s.store.Player("owner").Balance)
}

func (s *StoreSuite) TestUpdateMemberRequiresClan() {
	err := s.store.UpdateMember("loner", func(p *PlayerTx, c *ClanTx) error {
		return nil
	})
	s.ErrorIs(err, model.ErrNotInClan)
}

func (s *StoreSuite) TestUpdateClansSameClanForbidden() {
	err := s.store.UpdateClans("x", "x", func(a, b *ClanTx) error { return nil })
	s.ErrorIs(err, model.ErrSelfTargetForbidden)
}

func (s *StoreSuite) TestUpdateClansPassesInArgumentOrder() {
	_, err := s.fundedClan("a", "Zeta")
	s.Require().NoError(err)
	_, err = s.fundedClan("b", "Alpha")
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdateClans("Clan Zeta", "Clan Alpha", func(a, b *ClanTx) error {
		s.Equal("Clan Zeta", a.Clan().Name)
		s.Equal("Clan Alpha", b.Clan().Name)
		a.Deposit(3)
		return nil
	}))

	c, err := s.store.Clan("Clan Zeta")
	s.Require().NoError(err)
	s.Equal(int64(3), c.Treasury)
}

// Promo tests

func (s *StoreSuite) TestRedeemPromoOncePerPlayer() {
	_, err := s.store.UpsertPromo("spooky", 25, 0)
	s.Require().NoError(err)

	promo, err := s.store.RedeemPromo("SPOOKY", "1")
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{"1"}, promo.RedeemedBy)
	s.Equal(int64(35), s.store.Player("1").Balance)

	_, err = s.store.RedeemPromo("spooky", "1")
	s.ErrorIs(err, model.ErrPromoAlreadyRedeemed)
	s.Equal(int64(35), s.store.Player("1").Balance)
}

func (s *StoreSuite) TestRedeemPromoRespectsMaxUses() {
	_, err := s.store.UpsertPromo("ONCE", 5, 1)
	s.Require().NoError(err)

	_, err = s.store.RedeemPromo("ONCE", "1")
	s.Require().NoError(err)
	_, err = s.store.RedeemPromo("ONCE", "2")
	s.ErrorIs(err, model.ErrPromoExhausted)
}

func (s *StoreSuite) TestRedeemUnknownPromo() {
	_, err := s.store.RedeemPromo("NOPE", "1")
	s.ErrorIs(err, model.ErrPromoNotFound)
}

func (s *StoreSuite) TestUpsertPromoValidatesReward() {
	_, err := s.store.UpsertPromo("X", 0, 0)
	s.ErrorIs(err, model.ErrInvalidAmount)
}

func (s *StoreSuite) TestDeletePromo() {
	_, err := s.store.UpsertPromo("X", 5, 0)
	s.Require().NoError(err)
	s.Require().NoError(s.store.DeletePromo("x"))
	s.ErrorIs(s.store.DeletePromo("x"), model.ErrPromoNotFound)
}

// Chat and pending tests

func (s *StoreSuite) TestRegisterChatOnce() {
	s.True(s.store.RegisterChat("-100"))
	s.False(s.store.RegisterChat("-100"))
	s.True(s.store.RegisterChat("-50"))
	s.Equal([]model.ChatID{"-100", "-50"}, s.store.Chats())
}

func (s *StoreSuite) TestUpdatePendingCommitsOnSuccess() {
	now := s.clock.Now()
	s.store.PutPending(&model.PendingDecision{
		Token: "t1", Kind: model.DecisionSteal, State: model.DecisionPending,
		CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	})

	err := s.store.UpdatePending("t1", func(d *model.PendingDecision) error {
		d.State = model.DecisionResolved
		return nil
	})
	s.Require().NoError(err)

	d, err := s.store.Pending("t1")
	s.Require().NoError(err)
	s.Equal(model.DecisionResolved, d.State)
}

func (s *StoreSuite) TestPrunePendingRemovesOnlySettled() {
	now := s.clock.Now()
	s.store.PutPending(&model.PendingDecision{Token: "open", State: model.DecisionPending, ExpiresAt: now})
	s.store.PutPending(&model.PendingDecision{Token: "done", State: model.DecisionResolved, ExpiresAt: now})

	s.Equal(1, s.store.PrunePending(now.Add(time.Hour)))
	_, err := s.store.Pending("done")
	s.ErrorIs(err, model.ErrDecisionNotFound)
	_, err = s.store.Pending("open")
	s.NoError(err)
}

func (s *StoreSuite) TestPrunePendingRemovesOrphanedResolving() {
	now := s.clock.Now()
	s.store.PutPending(&model.PendingDecision{Token: "stuck", State: model.DecisionResolving, ExpiresAt: now})
	s.store.PutPending(&model.PendingDecision{Token: "recent", State: model.DecisionResolving, ExpiresAt: now.Add(2 * time.Hour)})

	s.Equal(1, s.store.PrunePending(now.Add(time.Hour)))
	_, err := s.store.Pending("stuck")
	s.ErrorIs(err, model.ErrDecisionNotFound)
	_, err = s.store.Pending("recent")
	s.NoError(err)
}

// Snapshot tests

func (s *StoreSuite) TestSnapshotRestoreRoundTrip() {
	clan, err := s.fundedClan("owner", "Bats")
	s.Require().NoError(err)
	_, err = s.store.UpsertPromo("X", 5, 0)
	s.Require().NoError(err)
	s.store.RegisterChat("-1")

	snap := s.store.Snapshot()

	restored := New(DefaultConfig(), s.clock, testutil.NopLogger())
	restored.Restore(snap)

	s.Equal(s.store.Player("owner"), restored.Player("owner"))
	c, err := restored.Clan(clan.Name)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("owner"), c.Owner)
	s.Equal([]model.ChatID{"-1"}, restored.Chats())
	s.Equal(1, restored.Stats().Promos)
}

func (s *StoreSuite) TestSnapshotIsIsolatedFromLaterWrites() {
	s.store.Player("1")
	snap := s.store.Snapshot()

	s.Require().NoError(s.store.UpdatePlayer("1", func(tx *PlayerTx) error {
		tx.Credit(5)
		return nil
	}))

	s.Equal(int64(10), snap.Players["1"].Balance)
}
