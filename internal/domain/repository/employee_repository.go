package repository

import (
	"context"

	"github.com/shyakx/erp-system/internal/domain/entity"
)

// EmployeeRepository puerto de empleados.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByCode(ctx context.Context, companyID, code string) (*entity.Employee, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Employee, error)
}
