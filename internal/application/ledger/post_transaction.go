package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	domledger "github.com/shyakx/erp-system/internal/domain/ledger"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

// PostTransactionUseCase registra asientos contra cuentas de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), inserción del asiento y actualización del saldo
// en la misma transacción.
type PostTransactionUseCase struct {
	txRunner TxRunner
}

// NewPostTransactionUseCase construye el caso de uso.
func NewPostTransactionUseCase(txRunner TxRunner) *PostTransactionUseCase {
	return &PostTransactionUseCase{txRunner: txRunner}
}

// PostInput entrada para registrar un asiento.
type PostInput struct {
	CompanyID   string
	UserID      string
	AccountID   string
	Direction   string
	Amount      decimal.Decimal
	Category    string
	Description string
	Reference   string
}

// PostResult cuenta con el saldo nuevo y el asiento creado.
type PostResult struct {
	Account     *entity.Account
	Transaction *entity.Transaction
}

// Post valida monto y dirección antes de tocar la BD; luego, dentro de una transacción,
// bloquea la cuenta, inserta el asiento y actualiza el saldo. Cualquier error hace Rollback.
func (uc *PostTransactionUseCase) Post(ctx context.Context, in PostInput) (*PostResult, error) {
	if in.AccountID == "" {
		return nil, domain.ErrNotFound
	}
	delta, err := domledger.Delta(in.Direction, in.Amount)
	if err != nil {
		return nil, err
	}

	var result *PostResult
	err = uc.txRunner.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		txRepo repository.TransactionRepository,
	) error {
		account, err := accountRepo.GetForUpdate(ctx, in.AccountID)
		if err != nil {
			return err
		}
		if account == nil || account.CompanyID != in.CompanyID {
			return domain.ErrNotFound
		}

		now := time.Now().UTC()
		before := account.Balance
		after := before.Add(delta)

		tx := &entity.Transaction{
			ID:            uuid.New().String(),
			CompanyID:     account.CompanyID,
			AccountID:     account.ID,
			Direction:     in.Direction,
			Amount:        delta,
			BalanceBefore: before,
			BalanceAfter:  after,
			Category:      in.Category,
			Description:   in.Description,
			Reference:     in.Reference,
			PostedAt:      now,
			CreatedBy:     in.UserID,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		if err := accountRepo.UpdateBalance(ctx, account.ID, after, now); err != nil {
			return err
		}
		account.Balance = after
		account.UpdatedAt = now
		result = &PostResult{Account: account, Transaction: tx}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PostFromRequest adapta el request HTTP al caso de uso Post(ctx, PostInput).
func (uc *PostTransactionUseCase) PostFromRequest(ctx context.Context, companyID, userID, accountID string, in dto.PostTransactionRequest) (*dto.PostTransactionResponse, error) {
	res, err := uc.Post(ctx, PostInput{
		CompanyID:   companyID,
		UserID:      userID,
		AccountID:   accountID,
		Direction:   in.Direction,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Reference:   in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostTransactionResponse{
		Account:     toAccountResponse(res.Account),
		Transaction: toTransactionResponse(res.Transaction),
	}, nil
}
