package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un SKU en existencia. OnHand nunca es negativo.
// UnitCost es costo promedio ponderado, recalculado en cada entrada con costo.
type InventoryItem struct {
	ID            string
	CompanyID     string
	SKU           string
	Name          string
	Unit          string
	OnHand        int64
	UnitPrice     decimal.Decimal
	UnitCost      decimal.Decimal
	MinStockLevel int64 // umbral de reposición
	MaxStockLevel int64 // 0 = sin máximo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
