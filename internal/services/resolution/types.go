package resolution

import (
	"time"

	"github.com/mcoot/candyledger/internal/model"
)

// StealChoice is the target's answer to a steal attempt
type StealChoice string

const (
	ChoiceSweet StealChoice = "sweet"
	ChoiceTrick StealChoice = "trick"
)

// DuelChoice is a rock-paper-scissors hand
type DuelChoice string

const (
	Rock     DuelChoice = "rock"
	Paper    DuelChoice = "paper"
	Scissors DuelChoice = "scissors"
)

var duelChoices = []DuelChoice{Rock, Paper, Scissors}

// beats maps each hand to the hand it defeats
var beats = map[DuelChoice]DuelChoice{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// ParseDuelChoice validates a duel hand
func ParseDuelChoice(s string) (DuelChoice, error) {
	c := DuelChoice(s)
	if _, ok := beats[c]; !ok {
		return "", model.ErrInvalidChoice
	}
	return c, nil
}

// ParseStealChoice validates a steal answer
func ParseStealChoice(s string) (StealChoice, error) {
	switch c := StealChoice(s); c {
	case ChoiceSweet, ChoiceTrick:
		return c, nil
	}
	return "", model.ErrInvalidChoice
}

// StealOutcome describes how a steal resolved
type StealOutcome string

const (
	StealTaken    StealOutcome = "taken"
	StealShielded StealOutcome = "shielded"
	StealTricked  StealOutcome = "tricked"
)

// RaidOutcome describes how a clan raid ended
type RaidOutcome string

const (
	RaidDefended  RaidOutcome = "defended"
	RaidFailed    RaidOutcome = "failed"
	RaidSucceeded RaidOutcome = "succeeded"
)

// StealInitiated is returned when a steal attempt is opened
type StealInitiated struct {
	Token     string         `json:"token"`
	Initiator model.PlayerID `json:"initiator"`
	Target    model.PlayerID `json:"target"`
	ExpiresAt time.Time      `json:"expires_at"`
	// Multiplier applies to a sweet payout whenever the target answers
	Multiplier int64 `json:"multiplier"`
}

// StealResolution is the result of the target's choice
type StealResolution struct {
	Token      string         `json:"token"`
	Outcome    StealOutcome   `json:"outcome"`
	Initiator  model.PlayerID `json:"initiator"`
	Target     model.PlayerID `json:"target"`
	Taken      int64          `json:"taken"`
	Gained     int64          `json:"gained"`
	Multiplier int64          `json:"multiplier"`
	Muted      time.Duration  `json:"muted,omitempty"`
}

// DuelInitiated is returned when a duel is opened and both antes are escrowed
type DuelInitiated struct {
	Token     string         `json:"token"`
	Initiator model.PlayerID `json:"initiator"`
	Target    model.PlayerID `json:"target"`
	Ante      int64          `json:"ante"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// DuelResolution is the result of a duel. Winner is empty on a tie.
type DuelResolution struct {
	Token           string         `json:"token"`
	Initiator       model.PlayerID `json:"initiator"`
	Target          model.PlayerID `json:"target"`
	InitiatorChoice DuelChoice     `json:"initiator_choice"`
	TargetChoice    DuelChoice     `json:"target_choice"`
	Tie             bool           `json:"tie"`
	Winner          model.PlayerID `json:"winner,omitempty"`
	Payout          int64          `json:"payout"`
}

// RaidResult is the result of a clan raid
type RaidResult struct {
	Attacker   string      `json:"attacker"`
	Target     string      `json:"target"`
	Outcome    RaidOutcome `json:"outcome"`
	Cost       int64       `json:"cost"`
	Chance     float64     `json:"chance"`
	Stolen     int64       `json:"stolen"`
	Multiplier int64       `json:"multiplier"`
}
