package ledger

import (
	"context"
	"fmt"

	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

// AccountQueryUseCase consultas de cuentas e historial de asientos.
type AccountQueryUseCase struct {
	accountRepo repository.AccountRepository
	txRepo      repository.TransactionRepository
}

// NewAccountQueryUseCase construye el caso de uso.
func NewAccountQueryUseCase(accountRepo repository.AccountRepository, txRepo repository.TransactionRepository) *AccountQueryUseCase {
	return &AccountQueryUseCase{accountRepo: accountRepo, txRepo: txRepo}
}

// GetAccount devuelve la cuenta si existe y pertenece a la empresa.
func (uc *AccountQueryUseCase) GetAccount(ctx context.Context, companyID, id string) (*dto.AccountResponse, error) {
	account, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := toAccountResponse(account)
	return &out, nil
}

// ListTransactions historial paginado de una cuenta, más reciente primero.
func (uc *AccountQueryUseCase) ListTransactions(ctx context.Context, companyID, accountID string, in dto.TransactionFilterRequest) (*dto.Page[dto.TransactionResponse], error) {
	if _, err := uc.load(ctx, companyID, accountID); err != nil {
		return nil, err
	}
	in.DefaultPage()
	filter := repository.TransactionFilter{Direction: in.Direction, Category: in.Category}
	var err error
	if filter.From, filter.To, err = dto.ParseDateRange(in.From, in.To); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.txRepo.ListByAccount(ctx, accountID, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransactionResponse(t))
	}
	page := dto.NewPage(items, in.PageRequest, total)
	return &page, nil
}

func (uc *AccountQueryUseCase) load(ctx context.Context, companyID, id string) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil || account.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

func toAccountResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      a.Type,
		Currency:  a.Currency,
		Balance:   a.Balance,
		UpdatedAt: a.UpdatedAt,
	}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:            t.ID,
		AccountID:     t.AccountID,
		Direction:     t.Direction,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Category:      t.Category,
		Description:   t.Description,
		Reference:     t.Reference,
		PostedAt:      t.PostedAt,
		CreatedBy:     t.CreatedBy,
	}
}
