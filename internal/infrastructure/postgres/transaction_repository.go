package postgres

import (
	"context"
	"fmt"

	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo asientos sobre PostgreSQL. Solo INSERT y SELECT.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un asiento.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, company_id, account_id, direction, amount, balance_before, balance_after,
			category, description, reference, posted_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.AccountID, t.Direction, t.Amount, t.BalanceBefore, t.BalanceAfter,
		nullString(t.Category), nullString(t.Description), nullString(t.Reference), t.PostedAt, nullString(t.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByAccount asientos de la cuenta, más reciente primero, y el total filtrado.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID string, f repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, int, error) {
	w := newFilter("account_id = ?", accountID)
	if f.Direction != "" {
		w.and("direction = ?", f.Direction)
	}
	if f.Category != "" {
		w.and("category = ?", f.Category)
	}
	if f.From != nil {
		w.and("posted_at >= ?", *f.From)
	}
	if f.To != nil {
		w.and("posted_at <= ?", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	query := `
		SELECT id, company_id, account_id, direction, amount, balance_before, balance_after,
			category, description, reference, posted_at, created_by
		FROM transactions` + w.where() + ` ORDER BY posted_at DESC, id DESC` + pageSQL
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Transaction, 0, limit)
	for rows.Next() {
		var t entity.Transaction
		var category, description, reference, createdBy *string
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.AccountID, &t.Direction, &t.Amount, &t.BalanceBefore, &t.BalanceAfter,
			&category, &description, &reference, &t.PostedAt, &createdBy); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		t.Category, t.Description, t.Reference, t.CreatedBy = fromNull(category), fromNull(description), fromNull(reference), fromNull(createdBy)
		list = append(list, &t)
	}
	return list, total, rows.Err()
}
