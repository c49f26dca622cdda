package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/candyledger/internal/api/middleware"
	"github.com/mcoot/candyledger/internal/api/request"
	"github.com/mcoot/candyledger/internal/api/response"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/economy"
)

// WalletHandler handles balance, transfer and reward endpoints
type WalletHandler struct {
	controller *economy.Controller
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(controller *economy.Controller) *WalletHandler {
	return &WalletHandler{controller: controller}
}

// Daily handles POST /api/v1/daily
func (h *WalletHandler) Daily(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	result, err := h.controller.Daily(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Balance handles GET /api/v1/balance
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	response.JSON(w, http.StatusOK, h.controller.Balance(r.Context(), actor))
}

// Leaderboard handles GET /api/v1/leaderboard/players
func (h *WalletHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	response.JSON(w, http.StatusOK, h.controller.Leaderboard(r.Context(), actor))
}

// ClanLeaderboard handles GET /api/v1/leaderboard/clans
func (h *WalletHandler) ClanLeaderboard(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	response.JSON(w, http.StatusOK, h.controller.ClanLeaderboard(r.Context(), actor))
}

// Give handles POST /api/v1/give
func (h *WalletHandler) Give(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.GiveRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Target == "" {
		WriteError(w, NewInvalidRequestError("target is required"))
		return
	}

	result, err := h.controller.Give(r.Context(), actor, model.PlayerID(req.Target), req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Profile handles GET /api/v1/profile and GET /api/v1/profile/{player_id}
func (h *WalletHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	target := model.PlayerID(mux.Vars(r)["player_id"])

	profile, err := h.controller.Profile(r.Context(), actor, target)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// Challenges handles GET /api/v1/challenges
func (h *WalletHandler) Challenges(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	response.JSON(w, http.StatusOK, h.controller.Challenges(r.Context(), actor))
}

// ClaimChallenges handles POST /api/v1/challenges/claim
func (h *WalletHandler) ClaimChallenges(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	result, err := h.controller.ClaimChallenges(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// RedeemPromo handles POST /api/v1/promos/redeem
func (h *WalletHandler) RedeemPromo(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.RedeemPromoRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	result, err := h.controller.RedeemPromo(r.Context(), actor, req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
