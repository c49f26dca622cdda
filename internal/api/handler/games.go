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

// GameHandler handles steal and duel endpoints
type GameHandler struct {
	controller *economy.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *economy.Controller) *GameHandler {
	return &GameHandler{controller: controller}
}

// StartSteal handles POST /api/v1/steals
func (h *GameHandler) StartSteal(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	target, err := decodeTarget(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.StartSteal(r.Context(), actor, model.PlayerID(target))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, result)
}

// AnswerSteal handles POST /api/v1/steals/{token}/resolve
func (h *GameHandler) AnswerSteal(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	choice, err := decodeChoice(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.AnswerSteal(r.Context(), actor, mux.Vars(r)["token"], choice)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// StartDuel handles POST /api/v1/duels
func (h *GameHandler) StartDuel(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	target, err := decodeTarget(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.StartDuel(r.Context(), actor, model.PlayerID(target))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, result)
}

// AnswerDuel handles POST /api/v1/duels/{token}/resolve
func (h *GameHandler) AnswerDuel(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetActor(r.Context())

	choice, err := decodeChoice(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.AnswerDuel(r.Context(), actor, mux.Vars(r)["token"], choice)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func decodeTarget(r *http.Request) (string, error) {
	var req request.TargetRequest
	if err := decodeBody(r, &req); err != nil {
		return "", err
	}
	if req.Target == "" {
		return "", NewInvalidRequestError("target is required")
	}
	return req.Target, nil
}

func decodeChoice(r *http.Request) (string, error) {
	var req request.ChoiceRequest
	if err := decodeBody(r, &req); err != nil {
		return "", err
	}
	if req.Choice == "" {
		return "", NewInvalidRequestError("choice is required")
	}
	return req.Choice, nil
}
