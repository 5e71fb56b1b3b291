package repository

import (
	"context"
	"time"

	"github.com/shyakx/erp-system/internal/domain/entity"
)

// TransactionFilter filtros opcionales del historial de asientos.
type TransactionFilter struct {
	Direction string
	Category  string
	From      *time.Time
	To        *time.Time
}

// TransactionRepository puerto de asientos. Solo inserta y lee: los asientos son inmutables.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// ListByAccount devuelve la página pedida (más reciente primero) y el total sin paginar.
	ListByAccount(ctx context.Context, accountID string, filter TransactionFilter, limit, offset int) ([]*entity.Transaction, int, error)
}
