package handler

import (
	"net/http"

	"github.com/mcoot/candyledger/internal/api/middleware"
	"github.com/mcoot/candyledger/internal/api/request"
	"github.com/mcoot/candyledger/internal/api/response"
	"github.com/mcoot/candyledger/internal/services/economy"
)

// ShopHandler handles shop and inventory endpoints
type ShopHandler struct {
	controller *economy.Controller
}

// NewShopHandler creates a new shop handler
func NewShopHandler(controller *economy.Controller) *ShopHandler {
	return &ShopHandler{controller: controller}
}

// List handles GET /api/v1/shop
func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	response.JSON(w, http.StatusOK, h.controller.Shop(r.Context(), actor))
}

// Purchase handles POST /api/v1/shop/purchase
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.ItemRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Item == "" {
		WriteError(w, NewInvalidRequestError("item is required"))
		return
	}

	result, err := h.controller.Purchase(r.Context(), actor, req.Item)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Inventory handles GET /api/v1/inventory
func (h *ShopHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())
	response.JSON(w, http.StatusOK, h.controller.Inventory(r.Context(), actor))
}

// Use handles POST /api/v1/inventory/use
func (h *ShopHandler) Use(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.ItemRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Item == "" {
		WriteError(w, NewInvalidRequestError("item is required"))
		return
	}

	result, err := h.controller.Use(r.Context(), actor, req.Item)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
