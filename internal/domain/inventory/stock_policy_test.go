package inventory_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/inventory"
)

// Escenario: stock 50 → in 20 = 70 → out 90 rechazado (queda 70) → adjustment 0 = 0.
func TestNextQuantity_Escenario(t *testing.T) {
	qty, err := inventory.NextQuantity(entity.MovementTypeIn, 50, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(70), qty)

	after, err := inventory.NextQuantity(entity.MovementTypeOut, qty, 90)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, qty, after, "una salida rechazada no cambia el stock")

	qty, err = inventory.NextQuantity(entity.MovementTypeAdjustment, qty, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestNextQuantity_AjusteEsAbsoluto(t *testing.T) {
	first, err := inventory.NextQuantity(entity.MovementTypeAdjustment, 13, 40)
	require.NoError(t, err)
	second, err := inventory.NextQuantity(entity.MovementTypeAdjustment, first, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), first)
	assert.Equal(t, int64(40), second)
}

func TestNextQuantity_SalidaExacta(t *testing.T) {
	qty, err := inventory.NextQuantity(entity.MovementTypeOut, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestNextQuantity_Invalidos(t *testing.T) {
	_, err := inventory.NextQuantity("transfer", 5, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = inventory.NextQuantity(entity.MovementTypeIn, 5, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestNextQuantity_EntradaDesbordada(t *testing.T) {
	qty, err := inventory.NextQuantity(entity.MovementTypeIn, 50, math.MaxInt64)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(50), qty, "una entrada rechazada no cambia el stock")

	qty, err = inventory.NextQuantity(entity.MovementTypeIn, 1, math.MaxInt64-1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), qty)
}

func TestParseQuantity(t *testing.T) {
	q, err := inventory.ParseQuantity(decimal.NewFromInt(12))
	require.NoError(t, err)
	assert.Equal(t, int64(12), q)

	q, err = inventory.ParseQuantity(decimal.RequireFromString("3.0"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), q)

	for _, s := range []string{"1.5", "-2", "99999999999999999999999"} {
		_, err := inventory.ParseQuantity(decimal.RequireFromString(s))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %s debe rechazarse", s)
	}
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (10 × 100 + 30 × 120) / 40 = 115
	cost := inventory.CostCalculator(10, decimal.NewFromInt(100), 30, decimal.NewFromInt(120))
	assert.True(t, decimal.NewFromInt(115).Equal(cost), "costo: %s", cost)

	// Sin entrada el costo no cambia.
	cost = inventory.CostCalculator(10, decimal.NewFromInt(100), 0, decimal.NewFromInt(500))
	assert.True(t, decimal.NewFromInt(100).Equal(cost))
}

func TestSuggestedReorder(t *testing.T) {
	item := &entity.InventoryItem{OnHand: 3, MinStockLevel: 5, MaxStockLevel: 20}
	assert.Equal(t, int64(17), inventory.SuggestedReorder(item))

	item = &entity.InventoryItem{OnHand: 3, MinStockLevel: 5}
	assert.Equal(t, int64(7), inventory.SuggestedReorder(item))

	item = &entity.InventoryItem{OnHand: 30, MinStockLevel: 5, MaxStockLevel: 20}
	assert.Equal(t, int64(0), inventory.SuggestedReorder(item))
}
