package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/transport"
)

// MockGateway is a mock implementation of transport.Gateway for testing
type MockGateway struct {
	mu sync.Mutex

	// Unknown lists accounts VerifyAccountExists reports as missing
	Unknown map[model.PlayerID]bool

	// Errors to return from each call (nil for success)
	VerifyErr  error
	NotifyErr  error
	MuteErr    error
	MessageErr error

	Notifications []Notification
	Mutes         []Mute
	Messages      []Notification
}

// Notification is a recorded direct or chat message
type Notification struct {
	To   string
	Text string
}

// Mute is a recorded mute
type Mute struct {
	Chat     model.ChatID
	Player   model.PlayerID
	Duration time.Duration
}

// Ensure MockGateway implements Gateway
var _ transport.Gateway = (*MockGateway)(nil)

// NewMockGateway creates a MockGateway that accepts every account
func NewMockGateway() *MockGateway {
	return &MockGateway{Unknown: make(map[model.PlayerID]bool)}
}

func (g *MockGateway) VerifyAccountExists(ctx context.Context, id model.PlayerID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.VerifyErr != nil {
		return false, g.VerifyErr
	}
	return !g.Unknown[id], nil
}

func (g *MockGateway) SendDirectNotification(ctx context.Context, id model.PlayerID, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.NotifyErr != nil {
		return g.NotifyErr
	}
	g.Notifications = append(g.Notifications, Notification{To: string(id), Text: text})
	return nil
}

func (g *MockGateway) ApplyTemporaryMute(ctx context.Context, chat model.ChatID, id model.PlayerID, d time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.MuteErr != nil {
		return g.MuteErr
	}
	g.Mutes = append(g.Mutes, Mute{Chat: chat, Player: id, Duration: d})
	return nil
}

func (g *MockGateway) SendChatMessage(ctx context.Context, chat model.ChatID, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.MessageErr != nil {
		return g.MessageErr
	}
	g.Messages = append(g.Messages, Notification{To: string(chat), Text: text})
	return nil
}

// SetMuteErr changes the mute error under the lock
func (g *MockGateway) SetMuteErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.MuteErr = err
}
