// Package inventory contiene las reglas puras de existencias.
package inventory

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// ParseQuantity convierte la cantidad recibida (número JSON) a unidades enteras.
// Rechaza fracciones y negativos con domain.ErrInvalidQuantity.
func ParseQuantity(q decimal.Decimal) (int64, error) {
	if q.IsNegative() || !q.IsInteger() || !q.BigInt().IsInt64() {
		return 0, domain.ErrInvalidQuantity
	}
	return q.IntPart(), nil
}

// NextQuantity calcula las existencias resultantes de un movimiento:
//   - in: actual + cantidad
//   - out: actual - cantidad; ErrInsufficientStock si queda negativo
//   - adjustment: cantidad (valor absoluto, no acumulativo)
func NextQuantity(movementType string, current, quantity int64) (int64, error) {
	if quantity < 0 {
		return current, domain.ErrInvalidQuantity
	}
	switch movementType {
	case entity.MovementTypeIn:
		if quantity > math.MaxInt64-current {
			return current, fmt.Errorf("%w: %d + %d excede el máximo representable", domain.ErrInvalidQuantity, current, quantity)
		}
		return current + quantity, nil
	case entity.MovementTypeOut:
		next := current - quantity
		if next < 0 {
			return current, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, quantity)
		}
		return next, nil
	case entity.MovementTypeAdjustment:
		return quantity, nil
	}
	return current, domain.ErrInvalidMovementType
}

// ValidMovementType informa si t es uno de los tipos soportados.
func ValidMovementType(t string) bool {
	switch t {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeAdjustment:
		return true
	}
	return false
}

// SuggestedReorder cantidad sugerida para volver al nivel objetivo:
// max_stock_level si está definido, si no el doble del mínimo.
func SuggestedReorder(item *entity.InventoryItem) int64 {
	target := item.MaxStockLevel
	if target <= 0 {
		target = item.MinStockLevel * 2
	}
	if s := target - item.OnHand; s > 0 {
		return s
	}
	return 0
}
