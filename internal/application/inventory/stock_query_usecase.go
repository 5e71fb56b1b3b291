package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/inventory"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

// StockQueryUseCase consultas de ítems, historial de movimientos y lista de reposición.
type StockQueryUseCase struct {
	itemRepo repository.InventoryItemRepository
	movRepo  repository.InventoryMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(itemRepo repository.InventoryItemRepository, movRepo repository.InventoryMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// GetItem devuelve el ítem si existe y pertenece a la empresa.
func (uc *StockQueryUseCase) GetItem(ctx context.Context, companyID, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

// ListMovements historial paginado de movimientos de un ítem, más reciente primero.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, companyID, itemID string, in dto.MovementFilterRequest) (*dto.Page[dto.MovementResponse], error) {
	if _, err := uc.load(ctx, companyID, itemID); err != nil {
		return nil, err
	}
	in.DefaultPage()
	from, to, err := dto.ParseDateRange(in.From, in.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.movRepo.ListByItem(ctx, itemID, from, to, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	page := dto.NewPage(items, in.PageRequest, total)
	return &page, nil
}

// LowStock devuelve los ítems con existencias en o bajo su propio nivel mínimo,
// con la cantidad sugerida de pedido y su costo estimado. Mayor déficit primero.
func (uc *StockQueryUseCase) LowStock(ctx context.Context, companyID string, in dto.PageRequest) (*dto.Page[dto.LowStockItemDTO], error) {
	in.DefaultPage()
	list, total, err := uc.itemRepo.ListLowStock(ctx, companyID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(list))
	for _, it := range list {
		suggested := inventory.SuggestedReorder(it)
		items = append(items, dto.LowStockItemDTO{
			ItemID:            it.ID,
			SKU:               it.SKU,
			Name:              it.Name,
			OnHand:            it.OnHand,
			MinStockLevel:     it.MinStockLevel,
			MaxStockLevel:     it.MaxStockLevel,
			SuggestedOrderQty: suggested,
			UnitCost:          it.UnitCost,
			EstimatedCost:     decimal.NewFromInt(suggested).Mul(it.UnitCost),
		})
	}
	page := dto.NewPage(items, in, total)
	return &page, nil
}

func (uc *StockQueryUseCase) load(ctx context.Context, companyID, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
