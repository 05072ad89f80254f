package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/payload"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
)

func (h *accountHTTPHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req payload.TransactionRequest
	if !h.bind(w, r, &req) {
		return
	}

	tx, err := req.ToModel()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.transactionUsecase.CreateTransaction(r.Context(), tx)
	if err != nil {
		h.writeTransactionError(w, err, "failed to create transaction")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, payload.NewTransactionResponse(created))
}

func (h *accountHTTPHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	email, ok := requireEmailQuery(w, r)
	if !ok {
		return
	}

	txs, err := h.transactionUsecase.ListTransactions(r.Context(), email)
	if err != nil {
		h.writeTransactionError(w, err, "failed to list transactions")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewTransactionResponses(txs))
}

func (h *accountHTTPHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionUsecase.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeTransactionError(w, err, "failed to delete transaction")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.StatusResponse{Status: true, Message: "Transaction deleted successfully"})
}

func (h *accountHTTPHandler) writeTransactionError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrTransactionNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Transaction not found")
	default:
		h.logger.Error().Err(err).Msg(msg)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
	}
}
