package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/candyledger/internal/api/middleware"
	"github.com/mcoot/candyledger/internal/api/request"
	"github.com/mcoot/candyledger/internal/api/response"
	"github.com/mcoot/candyledger/internal/model"
	"github.com/mcoot/candyledger/internal/services/cooldown"
	"github.com/mcoot/candyledger/internal/services/economy"
)

// AdminHandler handles privileged endpoints. Privilege is checked by the
// controller from the actor headers.
type AdminHandler struct {
	controller *economy.Controller
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(controller *economy.Controller) *AdminHandler {
	return &AdminHandler{controller: controller}
}

type adjustFunc func(ctx context.Context, a economy.Actor, target model.PlayerID, amount int64) (*economy.AdjustResult, error)

// Credit handles POST /api/v1/admin/credit
func (h *AdminHandler) Credit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.controller.AdminCredit)
}

// Debit handles POST /api/v1/admin/debit
func (h *AdminHandler) Debit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.controller.AdminDebit)
}

func (h *AdminHandler) adjust(w http.ResponseWriter, r *http.Request, apply adjustFunc) {
	actor := middleware.MustGetActor(r.Context())

	var req request.AdjustRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Target == "" {
		WriteError(w, NewInvalidRequestError("target is required"))
		return
	}

	result, err := apply(r.Context(), actor, model.PlayerID(req.Target), req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// ListPromos handles GET /api/v1/admin/promos
func (h *AdminHandler) ListPromos(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	promos, err := h.controller.ListPromos(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PromosFromModel(promos))
}

// CreatePromo handles POST /api/v1/admin/promos
func (h *AdminHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.CreatePromoRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	promo, err := h.controller.CreatePromo(r.Context(), actor, req.Code, req.Reward, req.MaxUses)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.PromoFromModel(promo))
}

// DeletePromo handles DELETE /api/v1/admin/promos/{code}
func (h *AdminHandler) DeletePromo(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	if err := h.controller.DeletePromo(r.Context(), actor, mux.Vars(r)["code"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ResetCooldown handles POST /api/v1/admin/cooldowns/reset
func (h *AdminHandler) ResetCooldown(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.ResetCooldownRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	kind, ok := cooldown.ParseKind(req.Kind)
	if !ok {
		WriteError(w, NewInvalidRequestError("kind must be steal or clan_war"))
		return
	}
	if req.Subject == "" {
		WriteError(w, NewInvalidRequestError("subject is required"))
		return
	}

	result, err := h.controller.ResetCooldown(r.Context(), actor, kind, req.Subject)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	stats, err := h.controller.Stats(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
