package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/candyledger/internal/api/handler"
	"github.com/mcoot/candyledger/internal/api/middleware"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/services/economy"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *economy.Controller
	Metrics    *metrics.Metrics
	// TokenHash is the bcrypt hash of the transport's bearer token.
	// Empty disables authentication.
	TokenHash string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	walletHandler := handler.NewWalletHandler(cfg.Controller)
	shopHandler := handler.NewShopHandler(cfg.Controller)
	gameHandler := handler.NewGameHandler(cfg.Controller)
	clanHandler := handler.NewClanHandler(cfg.Controller)
	adminHandler := handler.NewAdminHandler(cfg.Controller)

	// Create middleware
	tokenAuth := middleware.NewTokenAuth(cfg.TokenHash, cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger, cfg.Metrics)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else is called by the transport on behalf of a player
	cmd := api.NewRoute().Subrouter()
	cmd.Use(tokenAuth.Middleware)
	cmd.Use(middleware.Actor)

	// Wallet routes
	cmd.HandleFunc("/daily", walletHandler.Daily).Methods(http.MethodPost)
	cmd.HandleFunc("/balance", walletHandler.Balance).Methods(http.MethodGet)
	cmd.HandleFunc("/give", walletHandler.Give).Methods(http.MethodPost)
	cmd.HandleFunc("/leaderboard/players", walletHandler.Leaderboard).Methods(http.MethodGet)
	cmd.HandleFunc("/leaderboard/clans", walletHandler.ClanLeaderboard).Methods(http.MethodGet)
	cmd.HandleFunc("/profile", walletHandler.Profile).Methods(http.MethodGet)
	cmd.HandleFunc("/profile/{player_id}", walletHandler.Profile).Methods(http.MethodGet)
	cmd.HandleFunc("/challenges", walletHandler.Challenges).Methods(http.MethodGet)
	cmd.HandleFunc("/challenges/claim", walletHandler.ClaimChallenges).Methods(http.MethodPost)
	cmd.HandleFunc("/promos/redeem", walletHandler.RedeemPromo).Methods(http.MethodPost)

	// Shop routes
	cmd.HandleFunc("/shop", shopHandler.List).Methods(http.MethodGet)
	cmd.HandleFunc("/shop/purchase", shopHandler.Purchase).Methods(http.MethodPost)
	cmd.HandleFunc("/inventory", shopHandler.Inventory).Methods(http.MethodGet)
	cmd.HandleFunc("/inventory/use", shopHandler.Use).Methods(http.MethodPost)

	// Game routes
	cmd.HandleFunc("/steals", gameHandler.StartSteal).Methods(http.MethodPost)
	cmd.HandleFunc("/steals/{token}/resolve", gameHandler.AnswerSteal).Methods(http.MethodPost)
	cmd.HandleFunc("/duels", gameHandler.StartDuel).Methods(http.MethodPost)
	cmd.HandleFunc("/duels/{token}/resolve", gameHandler.AnswerDuel).Methods(http.MethodPost)

	// Clan routes. The fixed "mine" paths must be registered before {name}.
	cmd.HandleFunc("/clans", clanHandler.Create).Methods(http.MethodPost)
	cmd.HandleFunc("/clans/mine", clanHandler.Show).Methods(http.MethodGet)
	cmd.HandleFunc("/clans/mine", clanHandler.Disband).Methods(http.MethodDelete)
	cmd.HandleFunc("/clans/mine/leave", clanHandler.Leave).Methods(http.MethodPost)
	cmd.HandleFunc("/clans/mine/war", clanHandler.War).Methods(http.MethodPost)
	cmd.HandleFunc("/clans/{name}", clanHandler.Show).Methods(http.MethodGet)
	cmd.HandleFunc("/clans/{name}/join", clanHandler.Join).Methods(http.MethodPost)

	// Admin routes
	cmd.HandleFunc("/admin/credit", adminHandler.Credit).Methods(http.MethodPost)
	cmd.HandleFunc("/admin/debit", adminHandler.Debit).Methods(http.MethodPost)
	cmd.HandleFunc("/admin/promos", adminHandler.ListPromos).Methods(http.MethodGet)
	cmd.HandleFunc("/admin/promos", adminHandler.CreatePromo).Methods(http.MethodPost)
	cmd.HandleFunc("/admin/promos/{code}", adminHandler.DeletePromo).Methods(http.MethodDelete)
	cmd.HandleFunc("/admin/cooldowns/reset", adminHandler.ResetCooldown).Methods(http.MethodPost)
	cmd.HandleFunc("/admin/stats", adminHandler.Stats).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
