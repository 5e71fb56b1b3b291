package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
	"github.com/shyakx/erp-system/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, s *memory.Store, balance int64) {
	t.Helper()
	require.NoError(t, memory.NewAccountRepository(s).Create(context.Background(), &entity.Account{
		ID: "acc-1", CompanyID: "c-1", Code: "1110", Name: "Banco", Balance: decimal.NewFromInt(balance),
	}))
}

// ── Transacciones ────────────────────────────────────────────────────────────

func TestTxRunner_RollbackDiscardsEverything(t *testing.T) {
	s := memory.NewStore()
	seedAccount(t, s, 100)
	ctx := context.Background()
	boom := errors.New("boom")

	err := memory.NewTxRunner(s).RunLedger(ctx, func(accounts repository.AccountRepository, txs repository.TransactionRepository) error {
		require.NoError(t, accounts.UpdateBalance(ctx, "acc-1", decimal.NewFromInt(999), time.Now()))
		require.NoError(t, txs.Create(ctx, &entity.Transaction{ID: "t-1", AccountID: "acc-1", PostedAt: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	acc, err := memory.NewAccountRepository(s).GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))

	_, total, err := memory.NewTransactionRepository(s).ListByAccount(ctx, "acc-1", repository.TransactionFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTxRunner_CommitPublishes(t *testing.T) {
	s := memory.NewStore()
	seedAccount(t, s, 100)
	ctx := context.Background()

	err := memory.NewTxRunner(s).RunLedger(ctx, func(accounts repository.AccountRepository, txs repository.TransactionRepository) error {
		if err := accounts.UpdateBalance(ctx, "acc-1", decimal.NewFromInt(150), time.Now()); err != nil {
			return err
		}
		return txs.Create(ctx, &entity.Transaction{ID: "t-1", AccountID: "acc-1", PostedAt: time.Now()})
	})
	require.NoError(t, err)

	acc, _ := memory.NewAccountRepository(s).GetByID(ctx, "acc-1")
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(150)))
}

func TestAccountRepo_ReturnsCopies(t *testing.T) {
	s := memory.NewStore()
	seedAccount(t, s, 100)
	ctx := context.Background()

	acc, _ := memory.NewAccountRepository(s).GetByID(ctx, "acc-1")
	acc.Balance = decimal.NewFromInt(-1)

	again, _ := memory.NewAccountRepository(s).GetByID(ctx, "acc-1")
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(100)))
}

func TestAccountRepo_MissingIsNilNil(t *testing.T) {
	acc, err := memory.NewAccountRepository(memory.NewStore()).GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, acc)
}

// ── Historial ────────────────────────────────────────────────────────────────

func TestTransactionRepo_ListNewestFirstWithFilters(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewTransactionRepository(s)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, dir := range []string{"credit", "debit", "credit"} {
		require.NoError(t, repo.Create(ctx, &entity.Transaction{
			ID: string(rune('a' + i)), AccountID: "acc-1", Direction: dir, PostedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, total, err := repo.ListByAccount(ctx, "acc-1", repository.TransactionFilter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	list, total, err = repo.ListByAccount(ctx, "acc-1", repository.TransactionFilter{Direction: "credit"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "c", list[0].ID)

	list, _, err = repo.ListByAccount(ctx, "acc-1", repository.TransactionFilter{}, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ── Inventario ───────────────────────────────────────────────────────────────

func TestInventoryItemRepo_LowStockUsesOwnMinimum(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewInventoryItemRepository(s)
	for _, it := range []*entity.InventoryItem{
		{ID: "1", CompanyID: "c-1", SKU: "A", OnHand: 5, MinStockLevel: 10},  // déficit 5
		{ID: "2", CompanyID: "c-1", SKU: "B", OnHand: 30, MinStockLevel: 10}, // ok
		{ID: "3", CompanyID: "c-1", SKU: "C", OnHand: 0, MinStockLevel: 20},  // déficit 20
		{ID: "4", CompanyID: "c-1", SKU: "D", OnHand: 10, MinStockLevel: 10}, // en el mínimo
		{ID: "5", CompanyID: "c-2", SKU: "E", OnHand: 0, MinStockLevel: 5},   // otra empresa
	} {
		require.NoError(t, repo.Create(ctx, it))
	}

	list, total, err := repo.ListLowStock(ctx, "c-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C", "A", "D"}, []string{list[0].SKU, list[1].SKU, list[2].SKU})
}

func TestInventoryItemRepo_DuplicateSKU(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewInventoryItemRepository(s)
	require.NoError(t, repo.Create(ctx, &entity.InventoryItem{ID: "1", CompanyID: "c-1", SKU: "A"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.InventoryItem{ID: "2", CompanyID: "c-1", SKU: "A"}), domain.ErrDuplicate)
	assert.NoError(t, repo.Create(ctx, &entity.InventoryItem{ID: "3", CompanyID: "c-2", SKU: "A"}))
}

// ── Nómina ───────────────────────────────────────────────────────────────────

func TestAttendanceRepo_OneRecordPerDay(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewAttendanceRepository(s)
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.AttendanceRecord{ID: "a1", EmployeeID: "e-1", Date: day}))
	err := repo.Create(ctx, &entity.AttendanceRecord{ID: "a2", EmployeeID: "e-1", Date: day})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := repo.ListByEmployeeAndPeriod(ctx, "e-1", day, day)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPayrollRepo_UniquePerPeriod(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewPayrollRepository(s)

	require.NoError(t, repo.Create(ctx, &entity.PayrollRecord{ID: "p1", CompanyID: "c-1", EmployeeID: "e-1", PeriodYear: 2024, PeriodMonth: 1}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.PayrollRecord{ID: "p2", CompanyID: "c-1", EmployeeID: "e-1", PeriodYear: 2024, PeriodMonth: 1}), domain.ErrDuplicate)

	exists, err := repo.ExistsForPeriod(ctx, "e-1", 2024, 1)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, _ = repo.ExistsForPeriod(ctx, "e-1", 2024, 2)
	assert.False(t, exists)
}

// ── Lock de corrida ──────────────────────────────────────────────────────────

func TestRunLocker_ConflictUntilReleased(t *testing.T) {
	l := memory.NewRunLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "payroll:c-1:2024-01", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "payroll:c-1:2024-01", time.Minute)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = l.Acquire(ctx, "payroll:c-1:2024-02", time.Minute)
	assert.NoError(t, err)

	require.NoError(t, release(ctx))
	_, err = l.Acquire(ctx, "payroll:c-1:2024-01", time.Minute)
	assert.NoError(t, err)
}

func TestSeedDemo_LoadsData(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, memory.SeedDemo(ctx, s, "hash", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))

	u, err := memory.NewUserRepository(s).GetByEmail(ctx, "ADMIN@demo.local")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	emps, err := memory.NewEmployeeRepository(s).ListActiveByCompany(ctx, memory.DemoCompanyID)
	require.NoError(t, err)
	assert.Len(t, emps, 3)

	low, total, err := memory.NewInventoryItemRepository(s).ListLowStock(ctx, memory.DemoCompanyID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, memory.DemoItemLowID, low[0].ID)
}
