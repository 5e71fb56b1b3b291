package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostTransactionRequest body para POST /api/ledger/accounts/:id/transactions.
type PostTransactionRequest struct {
	Direction   string          `json:"direction" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"omitempty,max=50"`
	Description string          `json:"description" validate:"omitempty,max=255"`
	Reference   string          `json:"reference" validate:"omitempty,max=100"`
}

// TransactionFilterRequest filtros del historial de asientos (query string).
type TransactionFilterRequest struct {
	PageRequest
	Direction string `query:"direction" validate:"omitempty,oneof=credit debit"`
	Category  string `query:"category" validate:"omitempty,max=50"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionResponse salida de un asiento.
type TransactionResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Direction     string          `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	PostedAt      time.Time       `json:"posted_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// PostTransactionResponse cuenta actualizada + asiento creado.
type PostTransactionResponse struct {
	Account     AccountResponse     `json:"account"`
	Transaction TransactionResponse `json:"transaction"`
}
