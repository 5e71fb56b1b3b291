package payroll

import (
	"context"
	"fmt"

	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	dompayroll "github.com/shyakx/erp-system/internal/domain/payroll"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

// exportPageSize tamaño de página al recorrer un periodo completo.
const exportPageSize = 500

// DocumentConfig datos de encabezado de desprendibles y planillas.
type DocumentConfig struct {
	CompanyName string
	Currency    string
}

// RecordUseCase consultas de registros de nómina, desprendible PDF y exportación XLSX.
type RecordUseCase struct {
	payrollRepo  repository.PayrollRepository
	employeeRepo repository.EmployeeRepository
	pdf          PayslipPDFGenerator
	exporter     PayrollExporter
	docs         DocumentConfig
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(
	payrollRepo repository.PayrollRepository,
	employeeRepo repository.EmployeeRepository,
	pdf PayslipPDFGenerator,
	exporter PayrollExporter,
	docs DocumentConfig,
) *RecordUseCase {
	return &RecordUseCase{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		pdf:          pdf,
		exporter:     exporter,
		docs:         docs,
	}
}

// ListByPeriod registros paginados del periodo.
func (uc *RecordUseCase) ListByPeriod(ctx context.Context, companyID string, in dto.PeriodQuery) (*dto.Page[dto.PayrollRecordResponse], error) {
	if _, _, err := dompayroll.PeriodBounds(in.Year, in.Month); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.payrollRepo.ListByPeriod(ctx, companyID, in.Year, in.Month, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	names := make(map[string]*entity.Employee)
	items := make([]dto.PayrollRecordResponse, 0, len(list))
	for _, r := range list {
		emp, err := uc.employee(ctx, names, r.EmployeeID)
		if err != nil {
			return nil, err
		}
		items = append(items, toRecordResponse(r, emp))
	}
	page := dto.NewPage(items, in.PageRequest, total)
	return &page, nil
}

// DownloadPayslip genera el PDF del desprendible de un registro.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound si el registro no existe o es de otra empresa.
func (uc *RecordUseCase) DownloadPayslip(ctx context.Context, companyID, recordID string) ([]byte, string, error) {
	rec, err := uc.payrollRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: obtener registro: %w", err)
	}
	if rec == nil || rec.CompanyID != companyID {
		return nil, "", domain.ErrNotFound
	}
	emp, err := uc.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: obtener empleado: %w", err)
	}
	if emp == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.pdf.GeneratePayslipPDF(ctx, PayslipData{
		CompanyName: uc.docs.CompanyName,
		Currency:    uc.docs.Currency,
		Employee:    emp,
		Record:      rec,
	})
	if err != nil {
		return nil, "", fmt.Errorf("payslip: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("desprendible_%s_%04d-%02d.pdf", emp.Code, rec.PeriodYear, rec.PeriodMonth)
	return pdfBytes, filename, nil
}

// ExportPeriod genera la planilla XLSX de todo el periodo.
func (uc *RecordUseCase) ExportPeriod(ctx context.Context, companyID string, year, month int) ([]byte, string, error) {
	if _, _, err := dompayroll.PeriodBounds(year, month); err != nil {
		return nil, "", err
	}
	names := make(map[string]*entity.Employee)
	var rows []PayrollExportRow
	for offset := 0; ; offset += exportPageSize {
		list, total, err := uc.payrollRepo.ListByPeriod(ctx, companyID, year, month, exportPageSize, offset)
		if err != nil {
			return nil, "", fmt.Errorf("export: listar registros: %w", err)
		}
		for _, r := range list {
			emp, err := uc.employee(ctx, names, r.EmployeeID)
			if err != nil {
				return nil, "", err
			}
			rows = append(rows, PayrollExportRow{Employee: emp, Record: r})
		}
		if len(list) == 0 || offset+len(list) >= total {
			break
		}
	}

	period := fmt.Sprintf("%04d-%02d", year, month)
	data, err := uc.exporter.ExportPayroll(ctx, period, uc.docs.Currency, rows)
	if err != nil {
		return nil, "", fmt.Errorf("export: generación fallida: %w", err)
	}
	return data, "nomina_" + period + ".xlsx", nil
}

// employee carga el empleado con caché por llamada; si fue borrado devuelve un placeholder.
func (uc *RecordUseCase) employee(ctx context.Context, cache map[string]*entity.Employee, id string) (*entity.Employee, error) {
	if emp, ok := cache[id]; ok {
		return emp, nil
	}
	emp, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		emp = &entity.Employee{ID: id, FirstName: "Empleado " + id}
	}
	cache[id] = emp
	return emp, nil
}
