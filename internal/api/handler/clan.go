package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/candyledger/internal/api/middleware"
	"github.com/mcoot/candyledger/internal/api/request"
	"github.com/mcoot/candyledger/internal/api/response"
	"github.com/mcoot/candyledger/internal/services/economy"
)

// ClanHandler handles clan endpoints
type ClanHandler struct {
	controller *economy.Controller
}

// NewClanHandler creates a new clan handler
func NewClanHandler(controller *economy.Controller) *ClanHandler {
	return &ClanHandler{controller: controller}
}

// Create handles POST /api/v1/clans
func (h *ClanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	var req request.CreateClanRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	clan, err := h.controller.CreateClan(r.Context(), actor, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.ClanFromModel(clan))
}

// Show handles GET /api/v1/clans/mine and GET /api/v1/clans/{name}
func (h *ClanHandler) Show(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	clan, err := h.controller.ShowClan(r.Context(), actor, mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClanFromModel(clan))
}

// Join handles POST /api/v1/clans/{name}/join
func (h *ClanHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	clan, err := h.controller.JoinClan(r.Context(), actor, mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClanFromModel(clan))
}

// Leave handles POST /api/v1/clans/mine/leave
func (h *ClanHandler) Leave(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	name, err := h.controller.LeaveClan(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClanLeft{Clan: name})
}

// Disband handles DELETE /api/v1/clans/mine
func (h *ClanHandler) Disband(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	name, err := h.controller.DisbandClan(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClanLeft{Clan: name})
}

// War handles POST /api/v1/clans/mine/war
func (h *ClanHandler) War(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	target, err := decodeTarget(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.ClanWar(r.Context(), actor, target)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
