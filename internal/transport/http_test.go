package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type HTTPGatewaySuite struct {
	suite.Suite
	server   *httptest.Server
	gateway  *HTTPGateway
	requests map[string]map[string]any
	status   int
	ctx      context.Context
}

func TestHTTPGatewaySuite(t *testing.T) {
	suite.Run(t, new(HTTPGatewaySuite))
}

func (s *HTTPGatewaySuite) SetupTest() {
	s.requests = make(map[string]map[string]any)
	s.status = http.StatusOK
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer secret", r.Header.Get("Authorization"))
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.requests[r.URL.Path] = body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		if r.URL.Path == "/verify" {
			_, _ = w.Write([]byte(`{"exists": true}`))
		}
	}))
	s.gateway = NewHTTPGateway(s.server.URL+"/", "secret")
	s.ctx = context.Background()
}

func (s *HTTPGatewaySuite) TearDownTest() {
	s.server.Close()
}

func (s *HTTPGatewaySuite) TestVerifyAccountExists() {
	ok, err := s.gateway.VerifyAccountExists(s.ctx, "42")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("42", s.requests["/verify"]["user_id"])
}

func (s *HTTPGatewaySuite) TestApplyTemporaryMuteSendsSeconds() {
	s.Require().NoError(s.gateway.ApplyTemporaryMute(s.ctx, "-100", "42", 2*time.Minute))
	s.Equal("-100", s.requests["/mute"]["chat_id"])
	s.Equal(float64(120), s.requests["/mute"]["seconds"])
}

func (s *HTTPGatewaySuite) TestSendChatMessage() {
	s.Require().NoError(s.gateway.SendChatMessage(s.ctx, "-100", "raid!"))
	s.Equal("raid!", s.requests["/message"]["text"])
}

func (s *HTTPGatewaySuite) TestErrorStatusFails() {
	s.status = http.StatusForbidden
	err := s.gateway.SendDirectNotification(s.ctx, "42", "hi")
	s.Error(err)
	s.Contains(err.Error(), "403")
}
