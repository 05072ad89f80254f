package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

func (h *accountHTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if !h.bind(w, r, &req) {
		return
	}

	_, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			httpx.WriteError(w, http.StatusBadRequest, "Email Already Registered")
		default:
			h.logger.Error().Err(err).Msg("failed to sign up")
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: "Record registered"})
}

// Login reports unknown accounts and wrong passwords with status false on a
// 200 response; clients branch on the status field.
func (h *accountHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: false, Message: "No record found"})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: false, Message: "Password is incorrect"})
		default:
			h.logger.Error().Err(err).Msg("failed to log in")
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	h.sessions.Bind(w, result.Token.Raw)

	httpx.WriteJSON(w, http.StatusOK, payload.LoginResponse{
		Status:       true,
		Message:      "Login successful",
		Username:     result.User.Username,
		Email:        result.User.Email,
		MobileNumber: result.MobileNumber,
	})
}

func (h *accountHTTPHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true})
}
