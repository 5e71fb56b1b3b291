// Package excel exporta la planilla de nómina de un periodo a XLSX.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	apppayroll "github.com/shyakx/erp-system/internal/application/payroll"
)

var _ apppayroll.PayrollExporter = (*PayrollExporter)(nil)

const sheetName = "Nomina"

var headings = []string{
	"Código", "Empleado", "Área", "Salario básico", "Horas trabajadas", "Horas extra",
	"Pago horas extra", "Devengado", "Impuesto", "Seguridad social", "Deducciones", "Neto",
}

// PayrollExporter implementa payroll.PayrollExporter con excelize.
type PayrollExporter struct{}

// NewPayrollExporter construye el exportador.
func NewPayrollExporter() *PayrollExporter { return &PayrollExporter{} }

// ExportPayroll una fila por empleado más una fila de totales. Los montos van como número
// con formato de miles para que la hoja se pueda sumar.
func (e *PayrollExporter) ExportPayroll(_ context.Context, period, currency string, rows []apppayroll.PayrollExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	title := fmt.Sprintf("Nómina %s (%s)", period, currency)
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headings))
	_ = f.SetCellStyle(sheetName, "A1", "A1", bold)
	_ = f.SetCellStyle(sheetName, "A3", lastCol+"3", bold)

	first := 4
	for i, r := range rows {
		n := first + i
		rec := r.Record
		values := []any{
			r.Employee.Code, r.Employee.FullName(), r.Employee.Department,
			rec.BasicSalary.InexactFloat64(), rec.TotalHours.InexactFloat64(), rec.OvertimeHours.InexactFloat64(),
			rec.OvertimePay.InexactFloat64(), rec.GrossPay.InexactFloat64(), rec.Tax.InexactFloat64(),
			rec.SocialSecurity.InexactFloat64(), rec.TotalDeductions.InexactFloat64(), rec.NetPay.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, n)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", n, err)
		}
	}

	last := first + len(rows) - 1
	totalRow := last + 1
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "TOTAL")
	if len(rows) > 0 {
		for c := 4; c <= len(headings); c++ {
			colName, _ := excelize.ColumnNumberToName(c)
			formula := fmt.Sprintf("SUM(%s%d:%s%d)", colName, first, colName, last)
			if err := f.SetCellFormula(sheetName, fmt.Sprintf("%s%d", colName, totalRow), formula); err != nil {
				return nil, fmt.Errorf("excel: total %s: %w", colName, err)
			}
		}
		_ = f.SetCellStyle(sheetName, fmt.Sprintf("D%d", first), fmt.Sprintf("%s%d", lastCol, totalRow), amount)
	}
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("%s%d", lastCol, totalRow), bold)
	_ = f.SetColWidth(sheetName, "B", "B", 28)
	_ = f.SetColWidth(sheetName, "D", lastCol, 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
