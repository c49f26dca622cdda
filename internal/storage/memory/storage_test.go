package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/storage"
	"github.com/mcoot/candyledger/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestLoadEmpty() {
	snap, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Players)
	s.Empty(snap.Clans)
	s.Empty(snap.Promos)
	s.Empty(snap.Chats)
	s.Empty(snap.Pending)
}

func (s *StorageSuite) TestSaveAndLoad() {
	want := testutil.SampleSnapshot()
	s.Require().NoError(s.storage.Save(s.ctx, want))

	got, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(want, got)
	s.Equal(1, s.storage.Saves())
}

func (s *StorageSuite) TestSaveIsDeterministic() {
	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))
	first := s.storage.Raw()
	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))
	s.Equal(first, s.storage.Raw())
}

func (s *StorageSuite) TestCorruptFamilyLoadsEmpty() {
	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))
	raw := s.storage.Raw()
	raw[storage.FamilyClans] = []byte("{not json")
	s.storage.SetRaw(raw)

	snap, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Clans)
	s.Len(snap.Players, 2)
}
