package inventory

import (
	"context"

	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// Usar desde handlers HTTP o desde otros casos de uso que tengan companyID, userID y dto.RegisterMovementRequest.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, companyID, userID, itemID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	res, err := uc.RegisterMovement(ctx, MovementInputDTO{
		CompanyID: companyID,
		UserID:    userID,
		ItemID:    itemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reason:    in.Reason,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMovementResponse{
		Item:     toItemResponse(res.Item),
		Movement: toMovementResponse(res.Movement),
	}, nil
}

func toItemResponse(i *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:            i.ID,
		SKU:           i.SKU,
		Name:          i.Name,
		Unit:          i.Unit,
		OnHand:        i.OnHand,
		UnitPrice:     i.UnitPrice,
		UnitCost:      i.UnitCost,
		MinStockLevel: i.MinStockLevel,
		MaxStockLevel: i.MaxStockLevel,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		UnitCost:       m.UnitCost,
		Reason:         m.Reason,
		Reference:      m.Reference,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
