package storage

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/candyledger/internal/model"
)

type CodecSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

func (s *CodecSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func (s *CodecSuite) TestEncodeDecodeKeepsRecords() {
	snap := NewSnapshot()
	snap.Players["1"] = model.NewPlayer("1", 10)
	snap.Chats = []model.ChatID{"-2", "-1", "-2"}

	raw, err := Encode(snap)
	s.Require().NoError(err)

	got := Decode(raw, s.logger)
	s.Require().Contains(got.Players, model.PlayerID("1"))
	s.Equal(int64(10), got.Players["1"].Balance)
	s.Equal([]model.ChatID{"-1", "-2"}, got.Chats)
}

func (s *CodecSuite) TestWrongTypedRecordDiscardsWholeFamily() {
	raw := map[Family][]byte{
		FamilyPlayers: []byte(`{"1": {"balance": 40}, "2": {"balance": "lots"}}`),
		FamilyChats:   []byte(`["-1"]`),
	}

	got := Decode(raw, s.logger)
	s.Empty(got.Players)
	s.Equal([]model.ChatID{"-1"}, got.Chats)
}

func (s *CodecSuite) TestMissingFamiliesDecodeEmpty() {
	got := Decode(map[Family][]byte{}, s.logger)
	s.NotNil(got.Players)
	s.NotNil(got.Clans)
	s.NotNil(got.Promos)
	s.NotNil(got.Pending)
	s.Equal([]model.ChatID{}, got.Chats)
}
