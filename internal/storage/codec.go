package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/candyledger/internal/model"
)

// Encode renders each family as canonical JSON. encoding/json sorts map keys
// and every set in the model is kept sorted, so equal state encodes to equal bytes.
func Encode(snap *Snapshot) (map[Family][]byte, error) {
	chats := slices.Clone(snap.Chats)
	slices.Sort(chats)
	chats = slices.Compact(chats)
	if chats == nil {
		chats = []model.ChatID{}
	}

	values := map[Family]any{
		FamilyPlayers: nonNil(snap.Players),
		FamilyClans:   nonNil(snap.Clans),
		FamilyPromos:  nonNil(snap.Promos),
		FamilyChats:   chats,
		FamilyPending: nonNil(snap.Pending),
	}

	out := make(map[Family][]byte, len(values))
	for _, f := range Families {
		data, err := json.MarshalIndent(values[f], "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f, err)
		}
		out[f] = append(data, '\n')
	}
	return out, nil
}

// Decode builds a snapshot from raw family payloads. A missing, empty or
// corrupt family is logged and replaced by its empty default.
func Decode(raw map[Family][]byte, logger *slog.Logger) *Snapshot {
	snap := NewSnapshot()

	players := decodeFamily[map[model.PlayerID]*model.Player](raw, FamilyPlayers, logger)
	for id, p := range players {
		if p == nil {
			continue
		}
		p.ID = id
		p = p.Clone()
		slices.Sort(p.OwnedCostumes)
		snap.Players[id] = p
	}

	clans := decodeFamily[map[string]*model.Clan](raw, FamilyClans, logger)
	for name, c := range clans {
		if c == nil {
			continue
		}
		c.Name = name
		c = c.Clone()
		slices.Sort(c.Members)
		snap.Clans[name] = c
	}

	promos := decodeFamily[map[string]*model.Promo](raw, FamilyPromos, logger)
	for code, p := range promos {
		if p == nil {
			continue
		}
		p.Code = code
		p = p.Clone()
		slices.Sort(p.RedeemedBy)
		snap.Promos[code] = p
	}

	chats := decodeFamily[[]model.ChatID](raw, FamilyChats, logger)
	slices.Sort(chats)
	snap.Chats = slices.Compact(chats)
	if snap.Chats == nil {
		snap.Chats = []model.ChatID{}
	}

	pending := decodeFamily[map[string]*model.PendingDecision](raw, FamilyPending, logger)
	for token, d := range pending {
		if d == nil {
			continue
		}
		d.Token = token
		snap.Pending[token] = d
	}

	return snap
}

// decodeFamily unmarshals one family. Any error yields the zero value, so a
// payload that fails halfway never contributes partial records.
func decodeFamily[T any](raw map[Family][]byte, f Family, logger *slog.Logger) T {
	var out T
	data := raw[f]
	if len(data) == 0 {
		logger.Info("family not found, starting empty", slog.String("family", string(f)))
		return out
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("family unreadable, starting empty",
			slog.String("family", string(f)),
			slog.String("error", err.Error()))
		return out
	}
	return v
}

func nonNil[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return m
}
