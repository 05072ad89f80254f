package payload

import (
	"time"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
)

type TransactionRequest struct {
	Email           string   `json:"email"           validate:"required,email"`
	Type            string   `json:"type"            validate:"required"`
	Amount          *float64 `json:"amount"          validate:"required,gte=0"`
	TransactionType string   `json:"transactionType" validate:"required"`
	// Date defaults to the time of insertion when empty.
	Date string `json:"date"`
}

func (r *TransactionRequest) ToModel() (*model.Transaction, error) {
	tx := &model.Transaction{
		Email:           r.Email,
		Type:            r.Type,
		Amount:          *r.Amount,
		TransactionType: r.TransactionType,
	}

	if r.Date != "" {
		date, err := ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		tx.Date = date
	}

	return tx, nil
}

type TransactionResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	TransactionType string    `json:"transactionType"`
	Date            time.Time `json:"date"`
}

func NewTransactionResponses(txs []*model.Transaction) []*TransactionResponse {
	resp := make([]*TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, NewTransactionResponse(tx))
	}
	return resp
}

func NewTransactionResponse(tx *model.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              tx.ID.Hex(),
		Email:           tx.Email,
		Type:            tx.Type,
		Amount:          tx.Amount,
		TransactionType: tx.TransactionType,
		Date:            tx.Date,
	}
}
