package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryItemRepo ítems en memoria.
type InventoryItemRepo struct {
	s  *Store
	tx *tables
}

// NewInventoryItemRepository repo fuera de transacción.
func NewInventoryItemRepository(s *Store) *InventoryItemRepo {
	return &InventoryItemRepo{s: s}
}

// Create guarda una copia del ítem.
func (r *InventoryItemRepo) Create(_ context.Context, i *entity.InventoryItem) error {
	return r.s.write(r.tx, func(t *tables) error {
		if _, ok := t.items[i.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range t.items {
			if other.CompanyID == i.CompanyID && other.SKU == i.SKU {
				return domain.ErrDuplicate
			}
		}
		c := *i
		t.items[i.ID] = &c
		return nil
	})
}

// GetByID devuelve una copia del ítem; (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.s.read(r.tx, func(t *tables) {
		if i, ok := t.items[id]; ok {
			c := *i
			out = &c
		}
	})
	return out, nil
}

// GetForUpdate igual que GetByID: dentro de Run la tx ya es exclusiva.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

// UpdateStock fija existencias y costo promedio.
func (r *InventoryItemRepo) UpdateStock(_ context.Context, id string, onHand int64, unitCost decimal.Decimal, updatedAt time.Time) error {
	return r.s.write(r.tx, func(t *tables) error {
		i, ok := t.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		if onHand < 0 {
			return domain.ErrInsufficientStock
		}
		c := *i
		c.OnHand = onHand
		c.UnitCost = unitCost
		c.UpdatedAt = updatedAt
		t.items[id] = &c
		return nil
	})
}

// ListLowStock ítems de la empresa con on_hand bajo su propio mínimo.
func (r *InventoryItemRepo) ListLowStock(_ context.Context, companyID string, limit, offset int) ([]*entity.InventoryItem, int, error) {
	var matched []*entity.InventoryItem
	r.s.read(r.tx, func(t *tables) {
		for _, i := range t.items {
			if i.CompanyID == companyID && i.OnHand <= i.MinStockLevel {
				c := *i
				matched = append(matched, &c)
			}
		}
	})
	sort.Slice(matched, func(a, b int) bool {
		da := matched[a].MinStockLevel - matched[a].OnHand
		db := matched[b].MinStockLevel - matched[b].OnHand
		if da != db {
			return da > db
		}
		return matched[a].SKU < matched[b].SKU
	})
	return paginate(matched, limit, offset), len(matched), nil
}

// InventoryMovementRepo movimientos en memoria (solo append).
type InventoryMovementRepo struct {
	s  *Store
	tx *tables
}

// NewInventoryMovementRepository repo fuera de transacción.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

// Create agrega un movimiento.
func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.s.write(r.tx, func(t *tables) error {
		c := *m
		t.movements = append(t.movements, &c)
		return nil
	})
}

// ListByItem movimientos del ítem en el rango, más reciente primero, y el total.
func (r *InventoryMovementRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, int, error) {
	var matched []*entity.InventoryMovement
	r.s.read(r.tx, func(t *tables) {
		for i := len(t.movements) - 1; i >= 0; i-- {
			m := t.movements[i]
			if m.ItemID != itemID ||
				(from != nil && m.CreatedAt.Before(*from)) ||
				(to != nil && m.CreatedAt.After(*to)) {
				continue
			}
			c := *m
			matched = append(matched, &c)
		}
	})
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), len(matched), nil
}
