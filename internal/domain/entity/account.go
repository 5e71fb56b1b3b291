package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta monetaria.
const (
	AccountTypeBank       = "bank"
	AccountTypeCash       = "cash"
	AccountTypePayable    = "payable"
	AccountTypeReceivable = "receivable"
)

// Account representa una cuenta monetaria (banco, caja, por pagar, por cobrar).
// Balance es la suma de todos los asientos registrados desde su creación; solo el
// caso de uso de asientos lo modifica.
type Account struct {
	ID        string
	CompanyID string
	Code      string // código contable único por empresa
	Name      string
	Type      string
	Currency  string // ISO 4217, ej. RWF
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
