package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)
var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)
var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct {
	s *Store
}

// NewEmployeeRepository construye el repo.
func NewEmployeeRepository(s *Store) *EmployeeRepo {
	return &EmployeeRepo{s: s}
}

// Create guarda un empleado. Código repetido en la empresa -> domain.ErrDuplicate.
func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.s.write(nil, func(t *tables) error {
		for _, other := range t.employees {
			if other.ID == e.ID || (other.CompanyID == e.CompanyID && other.Code == e.Code) {
				return domain.ErrDuplicate
			}
		}
		c := *e
		t.employees[e.ID] = &c
		return nil
	})
}

// GetByID devuelve una copia del empleado; (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	r.s.read(nil, func(t *tables) {
		if e, ok := t.employees[id]; ok {
			c := *e
			out = &c
		}
	})
	return out, nil
}

// GetByCode busca por código del reloj de asistencia dentro de la empresa.
func (r *EmployeeRepo) GetByCode(_ context.Context, companyID, code string) (*entity.Employee, error) {
	var out *entity.Employee
	r.s.read(nil, func(t *tables) {
		for _, e := range t.employees {
			if e.CompanyID == companyID && e.Code == code {
				c := *e
				out = &c
				return
			}
		}
	})
	return out, nil
}

// ListActiveByCompany empleados activos de la empresa, ordenados por código.
func (r *EmployeeRepo) ListActiveByCompany(_ context.Context, companyID string) ([]*entity.Employee, error) {
	var list []*entity.Employee
	r.s.read(nil, func(t *tables) {
		for _, e := range t.employees {
			if e.CompanyID == companyID && e.Status == entity.EmployeeStatusActive {
				c := *e
				list = append(list, &c)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// AttendanceRepo marcaciones en memoria, una por (empleado, fecha).
type AttendanceRepo struct {
	s *Store
}

// NewAttendanceRepository construye el repo.
func NewAttendanceRepository(s *Store) *AttendanceRepo {
	return &AttendanceRepo{s: s}
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// Create guarda la marcación; una por (empleado, fecha).
func (r *AttendanceRepo) Create(_ context.Context, a *entity.AttendanceRecord) error {
	return r.s.write(nil, func(t *tables) error {
		key := attendanceKey(a.EmployeeID, a.Date)
		if _, ok := t.attendance[key]; ok {
			return fmt.Errorf("%w: asistencia de %s el %s", domain.ErrDuplicate, a.EmployeeID, a.Date.Format("2006-01-02"))
		}
		c := *a
		t.attendance[key] = &c
		return nil
	})
}

// ListByEmployeeAndPeriod marcaciones del empleado entre from y to (inclusive), por fecha.
func (r *AttendanceRepo) ListByEmployeeAndPeriod(_ context.Context, employeeID string, from, to time.Time) ([]*entity.AttendanceRecord, error) {
	var list []*entity.AttendanceRecord
	r.s.read(nil, func(t *tables) {
		for _, a := range t.attendance {
			if a.EmployeeID == employeeID && !a.Date.Before(from) && !a.Date.After(to) {
				c := *a
				list = append(list, &c)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// PayrollRepo registros de nómina en memoria, uno por (empleado, año, mes).
type PayrollRepo struct {
	s *Store
}

// NewPayrollRepository construye el repo.
func NewPayrollRepository(s *Store) *PayrollRepo {
	return &PayrollRepo{s: s}
}

// Create guarda el registro. Mismo ID o mismo (empleado, período) -> domain.ErrDuplicate.
func (r *PayrollRepo) Create(_ context.Context, p *entity.PayrollRecord) error {
	return r.s.write(nil, func(t *tables) error {
		for _, other := range t.payroll {
			if other.ID == p.ID || samePeriod(other, p.EmployeeID, p.PeriodYear, p.PeriodMonth) {
				return domain.ErrDuplicate
			}
		}
		c := *p
		t.payroll[p.ID] = &c
		return nil
	})
}

// GetByID devuelve una copia del registro; (nil, nil) si no existe.
func (r *PayrollRepo) GetByID(_ context.Context, id string) (*entity.PayrollRecord, error) {
	var out *entity.PayrollRecord
	r.s.read(nil, func(t *tables) {
		if p, ok := t.payroll[id]; ok {
			c := *p
			out = &c
		}
	})
	return out, nil
}

// ExistsForPeriod indica si el empleado ya tiene nómina para (year, month).
func (r *PayrollRepo) ExistsForPeriod(_ context.Context, employeeID string, year, month int) (bool, error) {
	var exists bool
	r.s.read(nil, func(t *tables) {
		for _, p := range t.payroll {
			if samePeriod(p, employeeID, year, month) {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

// ListByPeriod registros de la empresa en el período, por fecha de generación, y el total.
func (r *PayrollRepo) ListByPeriod(_ context.Context, companyID string, year, month, limit, offset int) ([]*entity.PayrollRecord, int, error) {
	var matched []*entity.PayrollRecord
	r.s.read(nil, func(t *tables) {
		for _, p := range t.payroll {
			if p.CompanyID == companyID && p.PeriodYear == year && p.PeriodMonth == month {
				c := *p
				matched = append(matched, &c)
			}
		}
	})
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].GeneratedAt.Equal(matched[j].GeneratedAt) {
			return matched[i].GeneratedAt.Before(matched[j].GeneratedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return paginate(matched, limit, offset), len(matched), nil
}

func samePeriod(p *entity.PayrollRecord, employeeID string, year, month int) bool {
	return p.EmployeeID == employeeID && p.PeriodYear == year && p.PeriodMonth == month
}
