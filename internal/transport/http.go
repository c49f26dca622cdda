package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/candyledger/internal/model"
)

// HTTPGateway calls the chat bot gateway over JSON HTTP
type HTTPGateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway creates a gateway client for baseURL
func NewHTTPGateway(baseURL, token string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type verifyRequest struct {
	UserID string `json:"user_id"`
}

type verifyResponse struct {
	Exists bool `json:"exists"`
}

type notifyRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type muteRequest struct {
	ChatID  string `json:"chat_id"`
	UserID  string `json:"user_id"`
	Seconds int64  `json:"seconds"`
}

type messageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (g *HTTPGateway) VerifyAccountExists(ctx context.Context, id model.PlayerID) (bool, error) {
	var resp verifyResponse
	if err := g.post(ctx, "/verify", verifyRequest{UserID: string(id)}, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (g *HTTPGateway) SendDirectNotification(ctx context.Context, id model.PlayerID, text string) error {
	return g.post(ctx, "/notify", notifyRequest{UserID: string(id), Text: text}, nil)
}

func (g *HTTPGateway) ApplyTemporaryMute(ctx context.Context, chat model.ChatID, id model.PlayerID, d time.Duration) error {
	return g.post(ctx, "/mute", muteRequest{
		ChatID:  string(chat),
		UserID:  string(id),
		Seconds: int64(d / time.Second),
	}, nil)
}

func (g *HTTPGateway) SendChatMessage(ctx context.Context, chat model.ChatID, text string) error {
	return g.post(ctx, "/message", messageRequest{ChatID: string(chat), Text: text}, nil)
}

func (g *HTTPGateway) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
