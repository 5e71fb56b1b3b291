package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// GetByID/GetForUpdate devuelven (nil, nil) si la cuenta no existe.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Account, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error
}
