package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, company_id, item_id, type, quantity, quantity_before, quantity_after,
			unit_cost, reason, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ItemID, m.Type, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.UnitCost, nullString(m.Reason), nullString(m.Reference), m.CreatedAt, nullString(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByItem lista movimientos de un ítem en un rango de fechas, más reciente primero.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, int, error) {
	w := newFilter("item_id = ?", itemID)
	if from != nil {
		w.and("created_at >= ?", *from)
	}
	if to != nil {
		w.and("created_at <= ?", *to)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	query := `
		SELECT id, company_id, item_id, type, quantity, quantity_before, quantity_after,
			unit_cost, reason, reference, created_at, created_by
		FROM inventory_movements` + w.where() + ` ORDER BY created_at DESC, id DESC` + pageSQL
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryMovement, 0, limit)
	for rows.Next() {
		var m entity.InventoryMovement
		var reason, reference, createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ItemID, &m.Type, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
			&m.UnitCost, &reason, &reference, &m.CreatedAt, &createdBy); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		m.Reason, m.Reference, m.CreatedBy = fromNull(reason), fromNull(reference), fromNull(createdBy)
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
