package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/items/:id/movements.
// Quantity se recibe como número JSON y debe ser entero no negativo.
type RegisterMovementRequest struct {
	Type      string           `json:"type" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason" validate:"omitempty,max=255"`
	Reference string           `json:"reference" validate:"omitempty,max=100"`
}

// MovementFilterRequest filtros del historial de movimientos.
type MovementFilterRequest struct {
	PageRequest
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// InventoryItemResponse salida de un ítem.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit,omitempty"`
	OnHand        int64           `json:"on_hand"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	MinStockLevel int64           `json:"min_stock_level"`
	MaxStockLevel int64           `json:"max_stock_level"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Type           string          `json:"type"`
	Quantity       int64           `json:"quantity"`
	QuantityBefore int64           `json:"quantity_before"`
	QuantityAfter  int64           `json:"quantity_after"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Reason         string          `json:"reason,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// RegisterMovementResponse ítem actualizado + movimiento creado.
type RegisterMovementResponse struct {
	Item     InventoryItemResponse `json:"item"`
	Movement MovementResponse      `json:"movement"`
}

// LowStockItemDTO ítem en o bajo su nivel mínimo con la cantidad sugerida de pedido.
type LowStockItemDTO struct {
	ItemID            string          `json:"item_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	OnHand            int64           `json:"on_hand"`
	MinStockLevel     int64           `json:"min_stock_level"`
	MaxStockLevel     int64           `json:"max_stock_level"`
	SuggestedOrderQty int64           `json:"suggested_order_qty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
}
