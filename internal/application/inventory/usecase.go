package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/inventory"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (in, out, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// UnitCost es opcional; en entradas recalcula el costo promedio ponderado del ítem.
type MovementInputDTO struct {
	CompanyID string
	UserID    string
	ItemID    string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reason    string
	Reference string
}

// MovementResult ítem con las existencias nuevas y el movimiento creado.
type MovementResult struct {
	Item     *entity.InventoryItem
	Movement *entity.InventoryMovement
}

// RegisterMovement valida tipo y cantidad, inicia una transacción, bloquea la fila del ítem,
// calcula las existencias nuevas y persiste ítem + movimiento. Una salida que dejaría
// stock negativo devuelve ErrInsufficientStock sin escribir nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	if input.ItemID == "" {
		return nil, domain.ErrNotFound
	}
	if !inventory.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidMovementType
	}
	quantity, err := inventory.ParseQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *MovementResult
	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Bloquea la fila del ítem para evitar actualizaciones perdidas
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.CompanyID != input.CompanyID {
			return domain.ErrNotFound
		}

		next, err := inventory.NextQuantity(input.Type, item.OnHand, quantity)
		if err != nil {
			return err
		}

		unitCost := item.UnitCost
		if input.Type == entity.MovementTypeIn && input.UnitCost != nil {
			unitCost = inventory.CostCalculator(item.OnHand, item.UnitCost, quantity, *input.UnitCost)
		}

		now := time.Now().UTC()
		movCost := unitCost
		if input.UnitCost != nil {
			movCost = *input.UnitCost
		}
		mov := &entity.InventoryMovement{
			ID:             uuid.New().String(),
			CompanyID:      item.CompanyID,
			ItemID:         item.ID,
			Type:           input.Type,
			Quantity:       next - item.OnHand,
			QuantityBefore: item.OnHand,
			QuantityAfter:  next,
			UnitCost:       movCost,
			Reason:         input.Reason,
			Reference:      input.Reference,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}
		if err := itemRepo.UpdateStock(ctx, item.ID, next, unitCost, now); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		item.OnHand = next
		item.UnitCost = unitCost
		item.UpdatedAt = now
		result = &MovementResult{Item: item, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
