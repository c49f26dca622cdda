package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/storage"
	"github.com/mcoot/candyledger/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestLoadEmpty() {
	snap, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Players)
	s.Empty(snap.Clans)
	s.Empty(snap.Pending)
}

func (s *StorageSuite) TestSaveAndLoad() {
	want := testutil.SampleSnapshot()
	s.Require().NoError(s.storage.Save(s.ctx, want))

	got, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *StorageSuite) TestSaveWritesEveryFamilyKey() {
	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))

	for _, f := range storage.Families {
		s.True(s.mini.Exists(familyKey("candy", f)), "missing key for %s", f)
	}
}

func (s *StorageSuite) TestSaveIsDeterministic() {
	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))
	first, err := s.mini.Get(familyKey("candy", storage.FamilyPlayers))
	s.Require().NoError(err)

	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))
	second, err := s.mini.Get(familyKey("candy", storage.FamilyPlayers))
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *StorageSuite) TestCorruptFamilyLoadsEmpty() {
	s.Require().NoError(s.storage.Save(s.ctx, testutil.SampleSnapshot()))
	s.Require().NoError(s.mini.Set(familyKey("candy", storage.FamilyPlayers), "[broken"))

	got, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(got.Players)
	s.Len(got.Clans, 1)
}

func (s *StorageSuite) TestLoadFailsWhenServerDown() {
	s.mini.Close()
	s.mini = nil

	_, err := s.storage.Load(s.ctx)
	s.Error(err)
}
