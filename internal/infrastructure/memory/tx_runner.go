package memory

import (
	"context"

	"github.com/shyakx/erp-system/internal/application/inventory"
	"github.com/shyakx/erp-system/internal/application/ledger"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el Store: todo o nada.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos de inventario atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.s.inTx(func(tx *tables) error {
		return fn(&InventoryItemRepo{s: r.s, tx: tx}, &InventoryMovementRepo{s: r.s, tx: tx})
	})
}

// RunLedger ejecuta fn con repos del libro mayor atados a la transacción.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.s.inTx(func(tx *tables) error {
		return fn(&AccountRepo{s: r.s, tx: tx}, &TransactionRepo{s: r.s, tx: tx})
	})
}
