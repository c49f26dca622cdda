package model

import "time"

// DecisionKind identifies what a pending decision resolves
type DecisionKind string

const (
	DecisionSteal DecisionKind = "steal"
	DecisionDuel  DecisionKind = "duel"
)

// DecisionState tracks the lifecycle of a pending decision
type DecisionState string

const (
	DecisionPending   DecisionState = "pending"
	DecisionResolving DecisionState = "resolving" // external call in flight
	DecisionResolved  DecisionState = "resolved"
	DecisionExpired   DecisionState = "expired"
)

// PendingDecision is a choice awaited from the target of a steal or duel.
// It is resolved at most once.
type PendingDecision struct {
	Token     string        `json:"token"`
	Kind      DecisionKind  `json:"kind"`
	Initiator PlayerID      `json:"initiator"`
	Target    PlayerID      `json:"target"`
	Chat      ChatID        `json:"chat"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
	State     DecisionState `json:"state"`
	Ante      int64         `json:"ante,omitempty"`
	// Multiplier is the sweet payout multiplier fixed when a steal opens
	Multiplier int64 `json:"multiplier,omitempty"`
}

// Open reports whether the decision can still be resolved at now
func (d *PendingDecision) Open(now time.Time) bool {
	return d.State == DecisionPending && now.Before(d.ExpiresAt)
}

// Clone returns a copy of the decision
func (d *PendingDecision) Clone() *PendingDecision {
	cp := *d
	return &cp
}
