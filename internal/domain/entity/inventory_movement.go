package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste absoluto (conteo físico)
)

// InventoryMovement representa un cambio de existencias inmutable.
type InventoryMovement struct {
	ID             string
	CompanyID      string
	ItemID         string
	Type           string
	Quantity       int64 // delta con signo: positivo entrada, negativo salida
	QuantityBefore int64
	QuantityAfter  int64
	UnitCost       decimal.Decimal
	Reason         string
	Reference      string
	CreatedAt      time.Time
	CreatedBy      string
}
