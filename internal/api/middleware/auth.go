package middleware

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/candyledger/internal/api/apierr"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/economy"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Actor headers set by the chat transport
const (
	HeaderActorID         = "X-Actor-ID"
	HeaderChatID          = "X-Chat-ID"
	HeaderActorPrivileged = "X-Actor-Privileged"
)

// TokenAuth checks the bearer token against a bcrypt hash. An empty hash
// disables the check.
type TokenAuth struct {
	hash   []byte
	logger *slog.Logger

	// digests of tokens that already passed the bcrypt check
	mu       sync.RWMutex
	accepted map[[sha256.Size]byte]struct{}
}

// NewTokenAuth creates a TokenAuth for the given bcrypt hash
func NewTokenAuth(hash string, logger *slog.Logger) *TokenAuth {
	if hash == "" {
		logger.Warn("api token hash not configured, authentication disabled")
	}
	return &TokenAuth{
		hash:     []byte(hash),
		logger:   logger,
		accepted: make(map[[sha256.Size]byte]struct{}),
	}
}

// Verify reports whether token matches the configured hash
func (a *TokenAuth) Verify(token string) bool {
	if len(a.hash) == 0 {
		return true
	}
	if token == "" {
		return false
	}
	digest := sha256.Sum256([]byte(token))
	a.mu.RLock()
	_, ok := a.accepted[digest]
	a.mu.RUnlock()
	if ok {
		return true
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(token)) != nil {
		return false
	}
	a.mu.Lock()
	a.accepted[digest] = struct{}{}
	a.mu.Unlock()
	return true
}

// Middleware rejects requests without a valid bearer token
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Verify(extractToken(r)) {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Actor reads the caller identity headers into the request context
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderActorID))
		if id == "" {
			apierr.WriteError(w, apierr.NewInvalidRequestError(HeaderActorID+" header is required"))
			return
		}
		actor := economy.Actor{
			ID:   model.PlayerID(id),
			Chat: model.ChatID(strings.TrimSpace(r.Header.Get(HeaderChatID))),
		}
		if v := r.Header.Get(HeaderActorPrivileged); v != "" {
			privileged, err := strconv.ParseBool(v)
			if err != nil {
				apierr.WriteError(w, apierr.NewInvalidRequestError(HeaderActorPrivileged+" must be a boolean"))
				return
			}
			actor.Privileged = privileged
		}
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetActor returns the caller from the request context
func GetActor(ctx context.Context) (economy.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(economy.Actor)
	return actor, ok
}

// MustGetActor returns the caller or panics
func MustGetActor(ctx context.Context) economy.Actor {
	actor, ok := GetActor(ctx)
	if !ok {
		panic("no actor in context - actor middleware not applied?")
	}
	return actor
}
