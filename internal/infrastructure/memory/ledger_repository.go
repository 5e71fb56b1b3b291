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

var _ repository.AccountRepository = (*AccountRepo)(nil)
var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// AccountRepo cuentas en memoria.
type AccountRepo struct {
	s  *Store
	tx *tables
}

// NewAccountRepository repo fuera de transacción.
func NewAccountRepository(s *Store) *AccountRepo {
	return &AccountRepo{s: s}
}

// Create guarda una copia de la cuenta.
func (r *AccountRepo) Create(_ context.Context, a *entity.Account) error {
	return r.s.write(r.tx, func(t *tables) error {
		if _, ok := t.accounts[a.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range t.accounts {
			if other.CompanyID == a.CompanyID && other.Code == a.Code {
				return domain.ErrDuplicate
			}
		}
		c := *a
		t.accounts[a.ID] = &c
		return nil
	})
}

// GetByID devuelve una copia de la cuenta; (nil, nil) si no existe.
func (r *AccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	r.s.read(r.tx, func(t *tables) {
		if a, ok := t.accounts[id]; ok {
			c := *a
			out = &c
		}
	})
	return out, nil
}

// GetForUpdate igual que GetByID: dentro de RunLedger la tx ya es exclusiva.
func (r *AccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

// UpdateBalance fija el saldo de la cuenta.
func (r *AccountRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error {
	return r.s.write(r.tx, func(t *tables) error {
		a, ok := t.accounts[id]
		if !ok {
			return domain.ErrNotFound
		}
		c := *a
		c.Balance = balance
		c.UpdatedAt = updatedAt
		t.accounts[id] = &c
		return nil
	})
}

// TransactionRepo asientos en memoria (solo append).
type TransactionRepo struct {
	s  *Store
	tx *tables
}

// NewTransactionRepository repo fuera de transacción.
func NewTransactionRepository(s *Store) *TransactionRepo {
	return &TransactionRepo{s: s}
}

// Create agrega un asiento.
func (r *TransactionRepo) Create(_ context.Context, tr *entity.Transaction) error {
	return r.s.write(r.tx, func(t *tables) error {
		c := *tr
		t.transactions = append(t.transactions, &c)
		return nil
	})
}

// ListByAccount asientos filtrados de la cuenta, más reciente primero, y el total.
func (r *TransactionRepo) ListByAccount(_ context.Context, accountID string, f repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, int, error) {
	var matched []*entity.Transaction
	r.s.read(r.tx, func(t *tables) {
		for i := len(t.transactions) - 1; i >= 0; i-- {
			tr := t.transactions[i]
			if tr.AccountID != accountID ||
				(f.Direction != "" && tr.Direction != f.Direction) ||
				(f.Category != "" && tr.Category != f.Category) ||
				(f.From != nil && tr.PostedAt.Before(*f.From)) ||
				(f.To != nil && tr.PostedAt.After(*f.To)) {
				continue
			}
			c := *tr
			matched = append(matched, &c)
		}
	})
	// Recorrido inverso + sort estable: a igual instante, el último insertado primero.
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].PostedAt.After(matched[j].PostedAt) })
	return paginate(matched, limit, offset), len(matched), nil
}

// paginate recorta según limit/offset; limit <= 0 devuelve todo desde offset.
func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
