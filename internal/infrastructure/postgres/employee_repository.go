package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo empleados sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, company_id, code, first_name, last_name, department, position, basic_salary, status, hired_at, created_at, updated_at`

// Create persiste un empleado. Código duplicado en la empresa -> domain.ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	var hired *time.Time
	if !e.HiredAt.IsZero() {
		hired = &e.HiredAt
	}
	_, err := r.q.Exec(ctx, `INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.CompanyID, e.Code, e.FirstName, nullString(e.LastName), nullString(e.Department), nullString(e.Position),
		e.BasicSalary, e.Status, hired, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado; (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetByCode busca por código del reloj de asistencia dentro de la empresa.
func (r *EmployeeRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Employee, error) {
	return r.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND code = $2`, companyID, code)
}

// ListActiveByCompany empleados activos de la empresa, ordenados por código.
func (r *EmployeeRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND status = $2 ORDER BY code`,
		companyID, entity.EmployeeStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EmployeeRepo) get(ctx context.Context, query string, args ...any) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var lastName, department, position *string
	var hired *time.Time
	if err := row.Scan(&e.ID, &e.CompanyID, &e.Code, &e.FirstName, &lastName, &department, &position,
		&e.BasicSalary, &e.Status, &hired, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	e.LastName, e.Department, e.Position = fromNull(lastName), fromNull(department), fromNull(position)
	if hired != nil {
		e.HiredAt = *hired
	}
	return &e, nil
}
