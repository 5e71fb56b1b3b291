package inventory_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/application/inventory"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID = "c-1"
	itemID    = "item-1"
)

type fixture struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.StockQueryUseCase
	store    *memory.Store
}

func newFixture(t *testing.T, items ...*entity.InventoryItem) fixture {
	t.Helper()
	s := memory.NewStore()
	for _, it := range items {
		require.NoError(t, memory.NewInventoryItemRepository(s).Create(context.Background(), it))
	}
	return fixture{
		register: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(s)),
		query:    inventory.NewStockQueryUseCase(memory.NewInventoryItemRepository(s), memory.NewInventoryMovementRepository(s)),
		store:    s,
	}
}

func item(onHand int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: itemID, CompanyID: companyID, SKU: "SKU-1", Name: "Cemento",
		OnHand: onHand, UnitCost: decimal.NewFromInt(100), MinStockLevel: 10,
	}
}

func move(f fixture, typ string, qty int64) (*inventory.MovementResult, error) {
	return f.register.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyID, UserID: "u-1", ItemID: itemID, Type: typ, Quantity: decimal.NewFromInt(qty),
	})
}

// ── Escenario de referencia ──────────────────────────────────────────────────

func TestRegisterMovement_Scenario(t *testing.T) {
	f := newFixture(t, item(50))

	res, err := move(f, entity.MovementTypeIn, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(70), res.Item.OnHand)
	assert.Equal(t, int64(20), res.Movement.Quantity)
	assert.Equal(t, int64(50), res.Movement.QuantityBefore)
	assert.Equal(t, int64(70), res.Movement.QuantityAfter)

	_, err = move(f, entity.MovementTypeOut, 90)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.query.GetItem(context.Background(), companyID, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), got.OnHand)

	res, err = move(f, entity.MovementTypeAdjustment, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Item.OnHand)
	assert.Equal(t, int64(-70), res.Movement.Quantity)

	// El out rechazado no dejó movimiento: solo in + adjustment.
	page, err := f.query.ListMovements(context.Background(), companyID, itemID, dto.MovementFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page.Total)
}

func TestRegisterMovement_AdjustmentIsIdempotent(t *testing.T) {
	f := newFixture(t, item(13))
	for i := 0; i < 3; i++ {
		res, err := move(f, entity.MovementTypeAdjustment, 40)
		require.NoError(t, err)
		assert.Equal(t, int64(40), res.Item.OnHand)
	}
}

func TestRegisterMovement_Validation(t *testing.T) {
	f := newFixture(t, item(5))
	ctx := context.Background()

	_, err := f.register.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: companyID, ItemID: itemID, Type: entity.MovementTypeIn, Quantity: decimal.RequireFromString("1.5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = move(f, entity.MovementTypeIn, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = move(f, "transfer", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = move(f, entity.MovementTypeIn, math.MaxInt64)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	it, err := f.query.GetItem(ctx, companyID, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.OnHand)

	_, err = f.register.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: "otra", ItemID: itemID, Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_InWithCostUpdatesAverage(t *testing.T) {
	it := item(10)
	f := newFixture(t, it)
	cost := decimal.NewFromInt(120)

	res, err := f.register.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyID, ItemID: itemID, Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(30), UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.True(t, res.Item.UnitCost.Equal(decimal.NewFromInt(115)), res.Item.UnitCost.String())
	assert.True(t, res.Movement.UnitCost.Equal(cost))
}

func TestRegisterMovementFromRequest(t *testing.T) {
	f := newFixture(t, item(1))
	out, err := f.register.RegisterMovementFromRequest(context.Background(), companyID, "u-1", itemID, dto.RegisterMovementRequest{
		Type: "in", Quantity: decimal.NewFromInt(4), Reason: "compra",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Item.OnHand)
	assert.Equal(t, "compra", out.Movement.Reason)
	assert.Equal(t, "u-1", out.Movement.CreatedBy)
}

// ── Reposición ───────────────────────────────────────────────────────────────

func TestLowStock_ComparesEachItemMinimum(t *testing.T) {
	f := newFixture(t,
		&entity.InventoryItem{ID: "a", CompanyID: companyID, SKU: "A", OnHand: 3, MinStockLevel: 5, MaxStockLevel: 20, UnitCost: decimal.NewFromInt(10)},
		&entity.InventoryItem{ID: "b", CompanyID: companyID, SKU: "B", OnHand: 50, MinStockLevel: 5},
		&entity.InventoryItem{ID: "c", CompanyID: companyID, SKU: "C", OnHand: 40, MinStockLevel: 100, UnitCost: decimal.NewFromInt(2)},
	)

	page, err := f.query.LowStock(context.Background(), companyID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	assert.Equal(t, "C", page.Items[0].SKU)
	assert.Equal(t, int64(160), page.Items[0].SuggestedOrderQty) // 2*100 - 40
	assert.True(t, page.Items[0].EstimatedCost.Equal(decimal.NewFromInt(320)))

	assert.Equal(t, "A", page.Items[1].SKU)
	assert.Equal(t, int64(17), page.Items[1].SuggestedOrderQty) // 20 - 3
}
