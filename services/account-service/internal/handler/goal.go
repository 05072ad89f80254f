package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

func (h *accountHTTPHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req payload.GoalRequest
	if !h.bind(w, r, &req) {
		return
	}

	goal, err := req.ToModel()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.goalUsecase.CreateGoal(r.Context(), goal)
	if err != nil {
		h.writeGoalError(w, err, "failed to create goal")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, payload.NewGoalResponse(created))
}

func (h *accountHTTPHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	email, ok := requireEmailQuery(w, r)
	if !ok {
		return
	}

	goals, err := h.goalUsecase.ListGoals(r.Context(), email)
	if err != nil {
		h.writeGoalError(w, err, "failed to list goals")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewGoalResponses(goals))
}

func (h *accountHTTPHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateGoalRequest
	if !h.bind(w, r, &req) {
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.goalUsecase.UpdateGoal(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		h.writeGoalError(w, err, "failed to update goal")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewGoalResponse(goal))
}

func (h *accountHTTPHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goalUsecase.DeleteGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeGoalError(w, err, "failed to delete goal")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: "Goal deleted successfully"})
}

func (h *accountHTTPHandler) writeGoalError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrGoalNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Goal not found")
	default:
		h.logger.Error().Err(err).Msg(msg)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
	}
}
