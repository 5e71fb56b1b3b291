package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, company_id, sku, name, unit, on_hand, unit_price, unit_cost, min_stock_level, max_stock_level, created_at, updated_at`

// Create persiste un ítem.
func (r *InventoryItemRepo) Create(ctx context.Context, i *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.CompanyID, i.SKU, i.Name, nullString(i.Unit), i.OnHand, i.UnitPrice, i.UnitCost,
		i.MinStockLevel, i.MaxStockLevel, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem; (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStock fija existencias y costo promedio.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, onHand int64, unitCost decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET on_hand = $2, unit_cost = $3, updated_at = $4 WHERE id = $1`,
		id, onHand, unitCost, updatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLowStock compara on_hand contra el min_stock_level de cada fila.
func (r *InventoryItemRepo) ListLowStock(ctx context.Context, companyID string, limit, offset int) ([]*entity.InventoryItem, int, error) {
	w := newFilter("company_id = ?", companyID)
	w.conds = append(w.conds, "on_hand <= min_stock_level")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count low stock: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	query := `SELECT ` + itemColumns + ` FROM inventory_items` + w.where() +
		` ORDER BY (min_stock_level - on_hand) DESC, sku` + pageSQL
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryItem, 0, limit)
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, i)
	}
	return list, total, rows.Err()
}

func (r *InventoryItemRepo) get(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	i, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return i, nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	var unit *string
	if err := row.Scan(&i.ID, &i.CompanyID, &i.SKU, &i.Name, &unit, &i.OnHand, &i.UnitPrice, &i.UnitCost,
		&i.MinStockLevel, &i.MaxStockLevel, &i.CreatedAt, &i.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	i.Unit = fromNull(unit)
	return &i, nil
}
