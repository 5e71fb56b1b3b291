package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo marcaciones sobre PostgreSQL. UNIQUE (employee_id, date).
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador.
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// Create persiste una marcación diaria. Si ya existe (empleado, fecha) devuelve domain.ErrDuplicate.
func (r *AttendanceRepo) Create(ctx context.Context, a *entity.AttendanceRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO attendance_records (id, company_id, employee_id, date, clock_in, clock_out, break_minutes, overtime_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.CompanyID, a.EmployeeID, a.Date, a.ClockIn, a.ClockOut, a.BreakMinutes, a.OvertimeHours, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: asistencia de %s el %s", domain.ErrDuplicate, a.EmployeeID, a.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// ListByEmployeeAndPeriod lista las marcaciones del empleado entre from y to (inclusive), ordenadas por fecha.
func (r *AttendanceRepo) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]*entity.AttendanceRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, employee_id, date, clock_in, clock_out, break_minutes, overtime_hours, created_at
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var list []*entity.AttendanceRecord
	for rows.Next() {
		var a entity.AttendanceRecord
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut,
			&a.BreakMinutes, &a.OvertimeHours, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
