package repository

import (
	"context"
	"time"

	"github.com/shyakx/erp-system/internal/domain/entity"
)

// AttendanceRepository puerto de marcaciones.
type AttendanceRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe registro para (empleado, fecha).
	Create(ctx context.Context, record *entity.AttendanceRecord) error
	// ListByEmployeeAndPeriod registros con fecha en [from, to], ordenados por fecha.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]*entity.AttendanceRecord, error)
}
