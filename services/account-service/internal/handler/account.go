package handler

import (
	"net/http"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

func (h *accountHTTPHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req payload.DeleteAccountRequest
	if !h.bind(w, r, &req) {
		return
	}

	if _, err := h.accountUsecase.DeleteAccount(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to delete account")
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	h.sessions.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: "Account deleted successfully"})
}
