package ledger

import (
	"context"

	"github.com/shyakx/erp-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el asiento y la actualización del saldo se confirmen juntos o no se apliquen.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
