package payroll

import (
	"context"
	"time"

	"github.com/shyakx/erp-system/internal/domain/entity"
)

// RunLocker evita dos corridas simultáneas del mismo periodo.
// Acquire devuelve domain.ErrConflict si otro proceso tiene el lock.
type RunLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// PayslipData datos que necesita el generador del desprendible.
type PayslipData struct {
	CompanyName string
	Currency    string
	Employee    *entity.Employee
	Record      *entity.PayrollRecord
}

// PayslipPDFGenerator puerto para el PDF del desprendible de pago.
type PayslipPDFGenerator interface {
	GeneratePayslipPDF(ctx context.Context, data PayslipData) ([]byte, error)
}

// PayrollExportRow fila de la planilla exportada.
type PayrollExportRow struct {
	Employee *entity.Employee
	Record   *entity.PayrollRecord
}

// PayrollExporter puerto para exportar la planilla de un periodo (XLSX).
type PayrollExporter interface {
	ExportPayroll(ctx context.Context, period string, currency string, rows []PayrollExportRow) ([]byte, error)
}
