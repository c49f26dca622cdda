package transport

import (
	"context"
	"time"

	"github.com/mcoot/candyledger/internal/model"
)

// Gateway is the chat transport as seen from the ledger. Every call may fail;
// callers decide whether a failure is fatal to the operation.
type Gateway interface {
	// VerifyAccountExists reports whether the account can receive transfers
	VerifyAccountExists(ctx context.Context, id model.PlayerID) (bool, error)

	// SendDirectNotification messages a player privately
	SendDirectNotification(ctx context.Context, id model.PlayerID, text string) error

	// ApplyTemporaryMute restricts a player from writing in chat for d
	ApplyTemporaryMute(ctx context.Context, chat model.ChatID, id model.PlayerID, d time.Duration) error

	// SendChatMessage posts a message to a chat
	SendChatMessage(ctx context.Context, chat model.ChatID, text string) error
}

// Nop is a Gateway that accepts every account and delivers nothing
type Nop struct{}

var _ Gateway = Nop{}

func (Nop) VerifyAccountExists(ctx context.Context, id model.PlayerID) (bool, error) {
	return true, nil
}

func (Nop) SendDirectNotification(ctx context.Context, id model.PlayerID, text string) error {
	return nil
}

func (Nop) ApplyTemporaryMute(ctx context.Context, chat model.ChatID, id model.PlayerID, d time.Duration) error {
	return nil
}

func (Nop) SendChatMessage(ctx context.Context, chat model.ChatID, text string) error {
	return nil
}
