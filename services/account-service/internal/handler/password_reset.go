package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

const msgInvalidToken = "invalid token"

func (h *accountHTTPHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !h.bind(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: false, Message: "User not registered"})
		case errors.Is(err, usecase.ErrMailDelivery):
			h.logger.Error().Err(err).Msg("failed to send password reset email")
			httpx.WriteError(w, http.StatusInternalServerError, msgSendingEmail)
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: msgEmailSent})
}

func (h *accountHTTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token, err := usecase.DecodeResetToken(chi.URLParam(r, "token"))
	if err != nil || token == "" {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidToken)
		return
	}

	var req payload.ResetPasswordRequest
	if !h.bind(w, r, &req) {
		return
	}

	err = h.passwordResetUsecase.ResetPassword(r.Context(), token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidToken):
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidToken)
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: "updated password"})
}
