package handler

import (
	"net/http"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

func (h *accountHTTPHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if !h.bind(w, r, &req) {
		return
	}

	err := h.contactUsecase.SendContactMessage(r.Context(), usecase.ContactParams{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to relay contact message")
		httpx.WriteError(w, http.StatusInternalServerError, msgSendingEmail)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: msgEmailSent})
}
