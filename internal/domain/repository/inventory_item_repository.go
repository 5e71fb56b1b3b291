package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
// GetByID/GetForUpdate devuelven (nil, nil) si el ítem no existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, id string, onHand int64, unitCost decimal.Decimal, updatedAt time.Time) error
	// ListLowStock ítems con on_hand <= min_stock_level del propio ítem, mayor déficit primero.
	ListLowStock(ctx context.Context, companyID string, limit, offset int) ([]*entity.InventoryItem, int, error)
}
