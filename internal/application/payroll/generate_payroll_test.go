package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/application/payroll"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	dompayroll "github.com/shyakx/erp-system/internal/domain/payroll"
	"github.com/shyakx/erp-system/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "c-1"

var runAt = time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	gen    *payroll.GeneratePayrollUseCase
	locker *memory.RunLocker
}

func newFixture(t *testing.T, policy dompayroll.OpenShiftPolicy) fixture {
	t.Helper()
	s := memory.NewStore()
	locker := memory.NewRunLocker()
	gen := payroll.NewGeneratePayrollUseCase(
		memory.NewEmployeeRepository(s),
		memory.NewAttendanceRepository(s),
		memory.NewPayrollRepository(s),
		locker,
		policy,
		zerolog.Nop(),
	).WithClock(func() time.Time { return runAt })
	return fixture{store: s, gen: gen, locker: locker}
}

func (f fixture) employee(t *testing.T, id, code string, salary int64) {
	t.Helper()
	require.NoError(t, memory.NewEmployeeRepository(f.store).Create(context.Background(), &entity.Employee{
		ID: id, CompanyID: companyID, Code: code, FirstName: "Emp", LastName: code,
		BasicSalary: decimal.NewFromInt(salary), Status: entity.EmployeeStatusActive,
	}))
}

func (f fixture) shift(t *testing.T, employeeID string, day int, from, to int, overtime int64, open bool) {
	t.Helper()
	date := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	in := date.Add(time.Duration(from) * time.Hour)
	out := date.Add(time.Duration(to) * time.Hour)
	rec := &entity.AttendanceRecord{
		ID: employeeID + date.Format("0102"), CompanyID: companyID, EmployeeID: employeeID, Date: date,
		ClockIn: &in, ClockOut: &out, BreakMinutes: 60, OvertimeHours: decimal.NewFromInt(overtime),
	}
	if open {
		rec.ClockOut = nil
	}
	require.NoError(t, memory.NewAttendanceRepository(f.store).Create(context.Background(), rec))
}

// ── Corrida ──────────────────────────────────────────────────────────────────

func TestGenerate_ReferenceScenario(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	f.employee(t, "e-1", "E001", 2_000_000)
	f.employee(t, "e-2", "E002", 1_000_000)
	f.shift(t, "e-1", 10, 8, 19, 2, false) // 10h trabajadas, 2h extra declaradas

	out, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01", out.Period)
	assert.Equal(t, 2, out.Generated)
	assert.Empty(t, out.Skipped)

	byEmp := map[string]dto.PayrollRecordResponse{}
	for _, r := range out.Records {
		byEmp[r.EmployeeID] = r
	}
	r1 := byEmp["e-1"]
	assert.True(t, r1.OvertimePay.Equal(decimal.NewFromInt(37_500)))
	assert.True(t, r1.GrossPay.Equal(decimal.NewFromInt(2_037_500)))
	assert.True(t, r1.Tax.Equal(decimal.NewFromInt(203_750)))
	assert.True(t, r1.SocialSecurity.Equal(decimal.NewFromInt(101_875)))
	assert.True(t, r1.NetPay.Equal(decimal.NewFromInt(1_731_875)))
	assert.True(t, r1.TotalHours.Equal(decimal.NewFromInt(10)))

	// Sin asistencia: neto = básico * 0.85.
	assert.True(t, byEmp["e-2"].NetPay.Equal(decimal.NewFromInt(850_000)))
}

func TestGenerate_RetrySkipsAlreadyGenerated(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	f.employee(t, "e-1", "E001", 1_000_000)

	_, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)

	f.employee(t, "e-2", "E002", 500_000)
	out, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Generated)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "e-1", out.Skipped[0].EmployeeID)
	assert.Equal(t, "ALREADY_GENERATED", out.Skipped[0].Code)

	exists, err := memory.NewPayrollRepository(f.store).ExistsForPeriod(context.Background(), "e-2", 2024, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerate_OpenShiftRejectedSkipsEmployee(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	f.employee(t, "e-1", "E001", 1_000_000)
	f.employee(t, "e-2", "E002", 1_000_000)
	f.shift(t, "e-2", 15, 8, 0, 0, true)

	out, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Generated)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "OPEN_SHIFT", out.Skipped[0].Code)
	assert.Contains(t, out.Skipped[0].Reason, "2024-01-15")
}

func TestGenerate_OpenShiftMeasuredUntilPeriodEnd(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftMeasureAt)
	f.employee(t, "e-1", "E001", 1_000_000)
	f.shift(t, "e-1", 31, 20, 0, 0, true) // entrada 31/01 20:00, sin salida

	out, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	// La corrida es posterior al periodo: se mide hasta 01/02 00:00 (4h - 1h de descanso).
	assert.True(t, out.Records[0].TotalHours.Equal(decimal.NewFromInt(3)), out.Records[0].TotalHours.String())
}

func TestGenerate_InvalidSalarySkipped(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	f.employee(t, "e-1", "E001", 0)

	out, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)
	assert.Zero(t, out.Generated)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "INVALID_SALARY", out.Skipped[0].Code)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	_, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestGenerate_ConcurrentRunConflicts(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	release, err := f.locker.Acquire(context.Background(), payroll.RunKey(companyID, 2024, 1), time.Minute)
	require.NoError(t, err)

	_, err = f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, release(context.Background()))
	_, err = f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	assert.NoError(t, err)
}

// ── Registros, desprendible y exportación ────────────────────────────────────

type fakePDF struct{ got payroll.PayslipData }

func (f *fakePDF) GeneratePayslipPDF(_ context.Context, data payroll.PayslipData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-fake"), nil
}

type fakeExporter struct {
	rows   []payroll.PayrollExportRow
	period string
	err    error
}

func (f *fakeExporter) ExportPayroll(_ context.Context, period, _ string, rows []payroll.PayrollExportRow) ([]byte, error) {
	f.period, f.rows = period, rows
	return []byte("xlsx"), f.err
}

func TestRecordUseCase(t *testing.T) {
	f := newFixture(t, dompayroll.OpenShiftReject)
	f.employee(t, "e-1", "E001", 1_000_000)
	f.employee(t, "e-2", "E002", 2_000_000)
	run, err := f.gen.Generate(context.Background(), companyID, "u-1", 2024, 1)
	require.NoError(t, err)

	pdf := &fakePDF{}
	exp := &fakeExporter{}
	uc := payroll.NewRecordUseCase(memory.NewPayrollRepository(f.store), memory.NewEmployeeRepository(f.store),
		pdf, exp, payroll.DocumentConfig{CompanyName: "ERP", Currency: "RWF"})
	ctx := context.Background()

	page, err := uc.ListByPeriod(ctx, companyID, dto.PeriodQuery{Year: 2024, Month: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page.Total)
	assert.NotEmpty(t, page.Items[0].EmployeeName)

	data, name, err := uc.DownloadPayslip(ctx, companyID, run.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
	assert.Contains(t, name, "2024-01.pdf")
	assert.Equal(t, "RWF", pdf.got.Currency)

	_, _, err = uc.DownloadPayslip(ctx, "otra", run.Records[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, name, err = uc.ExportPeriod(ctx, companyID, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, "nomina_2024-01.xlsx", name)
	assert.Len(t, exp.rows, 2)

	exp.err = errors.New("disco lleno")
	_, _, err = uc.ExportPeriod(ctx, companyID, 2024, 1)
	assert.Error(t, err)

	_, _, err = uc.ExportPeriod(ctx, companyID, 2024, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
