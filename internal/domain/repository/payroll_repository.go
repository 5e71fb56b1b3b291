package repository

import (
	"context"

	"github.com/shyakx/erp-system/internal/domain/entity"
)

// PayrollRepository puerto de registros de nómina.
type PayrollRepository interface {
	// Create devuelve domain.ErrDuplicate si ya hay registro para (empleado, año, mes).
	Create(ctx context.Context, record *entity.PayrollRecord) error
	GetByID(ctx context.Context, id string) (*entity.PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID string, year, month int) (bool, error)
	ListByPeriod(ctx context.Context, companyID string, year, month, limit, offset int) ([]*entity.PayrollRecord, int, error)
}
