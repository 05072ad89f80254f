package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

func (h *accountHTTPHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.ProfileRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile, err := req.ToModel()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.profileUsecase.CreateProfile(r.Context(), profile); err != nil {
		h.writeProfileError(w, err, "failed to create profile")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, payload.StatusResponse{Status: true, Message: "Profile created successfully"})
}

func (h *accountHTTPHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := requireEmailQuery(w, r)
	if !ok {
		return
	}

	profile, err := h.profileUsecase.GetProfile(r.Context(), email)
	if err != nil {
		h.writeProfileError(w, err, "failed to get profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewProfileResponse(profile))
}

func (h *accountHTTPHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.ProfileRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile, err := req.ToModel()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.profileUsecase.UpdateProfile(r.Context(), profile); err != nil {
		h.writeProfileError(w, err, "failed to update profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: "Profile updated successfully"})
}

func (h *accountHTTPHandler) writeProfileError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrProfileNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Profile not found")
	default:
		h.logger.Error().Err(err).Msg(msg)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
	}
}
