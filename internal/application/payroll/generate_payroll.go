package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	dompayroll "github.com/shyakx/erp-system/internal/domain/payroll"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

// runLockTTL duración máxima de una corrida antes de que el lock expire solo.
const runLockTTL = 5 * time.Minute

// GeneratePayrollUseCase corrida de nómina de un periodo para todos los empleados activos.
type GeneratePayrollUseCase struct {
	employeeRepo   repository.EmployeeRepository
	attendanceRepo repository.AttendanceRepository
	payrollRepo    repository.PayrollRepository
	locker         RunLocker
	openShifts     dompayroll.OpenShiftPolicy
	log            zerolog.Logger
	now            func() time.Time
}

// NewGeneratePayrollUseCase construye el caso de uso. Con OpenShiftMeasureAt los turnos
// abiertos se miden hasta el instante de la corrida (o el fin del periodo si ya pasó).
func NewGeneratePayrollUseCase(
	employeeRepo repository.EmployeeRepository,
	attendanceRepo repository.AttendanceRepository,
	payrollRepo repository.PayrollRepository,
	locker RunLocker,
	openShifts dompayroll.OpenShiftPolicy,
	log zerolog.Logger,
) *GeneratePayrollUseCase {
	return &GeneratePayrollUseCase{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		payrollRepo:    payrollRepo,
		locker:         locker,
		openShifts:     openShifts,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *GeneratePayrollUseCase) WithClock(now func() time.Time) *GeneratePayrollUseCase {
	uc.now = now
	return uc
}

// RunKey clave del lock de corrida para una empresa y periodo.
func RunKey(companyID string, year, month int) string {
	return fmt.Sprintf("payroll:%s:%04d-%02d", companyID, year, month)
}

// Generate liquida el periodo. Empleados ya liquidados se omiten (reintento idempotente);
// los que fallan por turno abierto o salario inválido se reportan en Skipped y la corrida sigue.
// Un error de almacenamiento corta la corrida; lo ya persistido queda y un reintento lo omite.
func (uc *GeneratePayrollUseCase) Generate(ctx context.Context, companyID, userID string, year, month int) (*dto.PayrollRunResponse, error) {
	from, to, err := dompayroll.PeriodBounds(year, month)
	if err != nil {
		return nil, err
	}

	release, err := uc.locker.Acquire(ctx, RunKey(companyID, year, month), runLockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := release(context.WithoutCancel(ctx)); rErr != nil {
			uc.log.Warn().Err(rErr).Str("company_id", companyID).Msg("payroll: liberar lock")
		}
	}()

	employees, err := uc.employeeRepo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("payroll: listar empleados: %w", err)
	}

	evaluatedAt := uc.now()
	if periodEnd := to.AddDate(0, 0, 1); evaluatedAt.After(periodEnd) {
		evaluatedAt = periodEnd
	}

	out := &dto.PayrollRunResponse{
		Period:  fmt.Sprintf("%04d-%02d", year, month),
		Records: make([]dto.PayrollRecordResponse, 0, len(employees)),
		Skipped: make([]dto.PayrollSkipDTO, 0),
	}
	for _, emp := range employees {
		exists, err := uc.payrollRepo.ExistsForPeriod(ctx, emp.ID, year, month)
		if err != nil {
			return nil, fmt.Errorf("payroll: verificar periodo de %s: %w", emp.ID, err)
		}
		if exists {
			out.Skipped = append(out.Skipped, uc.skip(emp, domain.ErrDuplicate, "ya liquidado en el periodo"))
			continue
		}

		attendance, err := uc.attendanceRepo.ListByEmployeeAndPeriod(ctx, emp.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("payroll: asistencia de %s: %w", emp.ID, err)
		}

		res, err := dompayroll.Calculate(dompayroll.Input{
			BasicSalary: emp.BasicSalary,
			Attendance:  attendance,
			OpenShifts:  uc.openShifts,
			EvaluatedAt: evaluatedAt,
		})
		if err != nil {
			if skippable(err) {
				out.Skipped = append(out.Skipped, uc.skip(emp, err, err.Error()))
				continue
			}
			return nil, err
		}

		rec := &entity.PayrollRecord{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			EmployeeID:      emp.ID,
			PeriodYear:      year,
			PeriodMonth:     month,
			BasicSalary:     emp.BasicSalary,
			TotalHours:      res.TotalHours,
			OvertimeHours:   res.OvertimeHours,
			OvertimePay:     res.OvertimePay,
			GrossPay:        res.GrossPay,
			Tax:             res.Tax,
			SocialSecurity:  res.SocialSecurity,
			TotalDeductions: res.TotalDeductions,
			NetPay:          res.NetPay,
			GeneratedAt:     uc.now(),
			GeneratedBy:     userID,
		}
		if err := uc.payrollRepo.Create(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				out.Skipped = append(out.Skipped, uc.skip(emp, err, "ya liquidado en el periodo"))
				continue
			}
			return nil, fmt.Errorf("payroll: guardar registro de %s: %w", emp.ID, err)
		}
		out.Records = append(out.Records, toRecordResponse(rec, emp))
	}
	out.Generated = len(out.Records)

	uc.log.Info().
		Str("company_id", companyID).
		Str("period", out.Period).
		Int("generated", out.Generated).
		Int("skipped", len(out.Skipped)).
		Msg("payroll: corrida finalizada")
	return out, nil
}

func skippable(err error) bool {
	return errors.Is(err, domain.ErrOpenShift) ||
		errors.Is(err, domain.ErrInvalidSalary) ||
		errors.Is(err, domain.ErrInvalidInput)
}

func (uc *GeneratePayrollUseCase) skip(emp *entity.Employee, cause error, reason string) dto.PayrollSkipDTO {
	uc.log.Warn().
		Err(cause).
		Str("employee_id", emp.ID).
		Str("employee_code", emp.Code).
		Msg("payroll: empleado omitido")
	return dto.PayrollSkipDTO{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Code:         skipCode(cause),
		Reason:       reason,
	}
}

func skipCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return "ALREADY_GENERATED"
	case errors.Is(err, domain.ErrOpenShift):
		return "OPEN_SHIFT"
	case errors.Is(err, domain.ErrInvalidSalary):
		return "INVALID_SALARY"
	}
	return "INVALID_ATTENDANCE"
}

func toRecordResponse(r *entity.PayrollRecord, emp *entity.Employee) dto.PayrollRecordResponse {
	out := dto.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Period:          fmt.Sprintf("%04d-%02d", r.PeriodYear, r.PeriodMonth),
		BasicSalary:     r.BasicSalary,
		TotalHours:      r.TotalHours,
		OvertimeHours:   r.OvertimeHours,
		OvertimePay:     r.OvertimePay,
		GrossPay:        r.GrossPay,
		Tax:             r.Tax,
		SocialSecurity:  r.SocialSecurity,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		GeneratedAt:     r.GeneratedAt,
	}
	if emp != nil {
		out.EmployeeName = emp.FullName()
	}
	return out
}
