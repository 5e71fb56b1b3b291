package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo registros de nómina. UNIQUE (employee_id, period_year, period_month).
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador.
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

const payrollColumns = `id, company_id, employee_id, period_year, period_month, basic_salary, total_hours, overtime_hours,
	overtime_pay, gross_pay, tax, social_security, total_deductions, net_pay, generated_at, generated_by`

// Create persiste un registro de nómina. Otro registro del mismo período -> domain.ErrDuplicate.
func (r *PayrollRepo) Create(ctx context.Context, p *entity.PayrollRecord) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payroll_records (`+payrollColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.CompanyID, p.EmployeeID, p.PeriodYear, p.PeriodMonth, p.BasicSalary, p.TotalHours, p.OvertimeHours,
		p.OvertimePay, p.GrossPay, p.Tax, p.SocialSecurity, p.TotalDeductions, p.NetPay, p.GeneratedAt, nullString(p.GeneratedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payroll record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de nómina; (nil, nil) si no existe.
func (r *PayrollRepo) GetByID(ctx context.Context, id string) (*entity.PayrollRecord, error) {
	p, err := scanPayroll(r.q.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// ExistsForPeriod indica si el empleado ya tiene nómina para (year, month).
func (r *PayrollRepo) ExistsForPeriod(ctx context.Context, employeeID string, year, month int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM payroll_records WHERE employee_id = $1 AND period_year = $2 AND period_month = $3)`,
		employeeID, year, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("payroll exists: %w", err)
	}
	return exists, nil
}

// ListByPeriod registros de la empresa en el período, por fecha de generación, y el total.
func (r *PayrollRepo) ListByPeriod(ctx context.Context, companyID string, year, month, limit, offset int) ([]*entity.PayrollRecord, int, error) {
	w := newFilter("company_id = ?", companyID).and("period_year = ?", year).and("period_month = ?", month)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_records`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payroll records: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+payrollColumns+` FROM payroll_records`+w.where()+` ORDER BY generated_at, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PayrollRecord, 0, limit)
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func scanPayroll(row pgx.Row) (*entity.PayrollRecord, error) {
	var p entity.PayrollRecord
	var generatedBy *string
	if err := row.Scan(&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodYear, &p.PeriodMonth, &p.BasicSalary, &p.TotalHours,
		&p.OvertimeHours, &p.OvertimePay, &p.GrossPay, &p.Tax, &p.SocialSecurity, &p.TotalDeductions, &p.NetPay,
		&p.GeneratedAt, &generatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan payroll record: %w", err)
	}
	p.GeneratedBy = fromNull(generatedBy)
	return &p, nil
}
