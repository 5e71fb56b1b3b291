package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de un asiento.
const (
	DirectionCredit = "credit" // suma al saldo
	DirectionDebit  = "debit"  // resta del saldo
)

// Transaction es un asiento inmutable contra una Account. Amount lleva signo
// (positivo crédito, negativo débito); BalanceBefore/BalanceAfter guardan el saldo
// alrededor del asiento para auditoría.
type Transaction struct {
	ID            string
	CompanyID     string
	AccountID     string
	Direction     string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Category      string // ej. payable, receivable, payroll, sale
	Description   string
	Reference     string // documento externo (factura, orden, nómina)
	PostedAt      time.Time
	CreatedBy     string
}
