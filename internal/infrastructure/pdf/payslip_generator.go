// Package pdf genera el desprendible de pago (payslip) de un registro de nómina.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa               │  DESPRENDIBLE + Periodo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre / Código / Área / Cargo                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TIEMPO: Horas trabajadas | Horas extra                     │
//	│  DEVENGADOS: Salario básico / Horas extra / Bruto           │
//	│  DEDUCCIONES: Impuesto / Seguridad social / Total           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NETO A PAGAR                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	apppayroll "github.com/shyakx/erp-system/internal/application/payroll"
	"github.com/shyakx/erp-system/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var monthNames = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apppayroll.PayslipPDFGenerator = (*PayslipGenerator)(nil)

// PayslipGenerator implementa payroll.PayslipPDFGenerator usando Maroto v2.
type PayslipGenerator struct {
	fmt *money.Formatter
}

// NewPayslipGenerator construye el generador; lang define separadores de miles ("en", "es").
func NewPayslipGenerator(lang string) *PayslipGenerator {
	return &PayslipGenerator{fmt: money.NewFormatter(lang)}
}

// GeneratePayslipPDF genera el PDF y devuelve sus bytes.
func (g *PayslipGenerator) GeneratePayslipPDF(_ context.Context, data apppayroll.PayslipData) ([]byte, error) {
	if data.Employee == nil || data.Record == nil {
		return nil, fmt.Errorf("pdf: faltan empleado o registro")
	}
	rec := data.Record
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Desprendible de pago", true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(data.CompanyName, rec.PeriodYear, rec.PeriodMonth))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("TIEMPO"))
	m.AddRows(g.lineRow("Horas trabajadas", g.fmt.Amount(rec.TotalHours)))
	m.AddRows(g.lineRow("Horas extra", g.fmt.Amount(rec.OvertimeHours)))

	m.AddRows(sectionTitle("DEVENGADOS"))
	m.AddRows(g.moneyRow("Salario básico", rec.BasicSalary, data.Currency))
	m.AddRows(g.moneyRow("Horas extra (x1.5)", rec.OvertimePay, data.Currency))
	m.AddRows(g.moneyRow("Total devengado", rec.GrossPay, data.Currency))

	m.AddRows(sectionTitle("DEDUCCIONES"))
	m.AddRows(g.moneyRow("Impuesto (10%)", rec.Tax, data.Currency))
	m.AddRows(g.moneyRow("Seguridad social (5%)", rec.SocialSecurity, data.Currency))
	m.AddRows(g.moneyRow("Total deducciones", rec.TotalDeductions, data.Currency))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.netRow(rec.NetPay, data.Currency))
	m.AddRows(footerRow(rec.GeneratedAt.Format("02/01/2006 15:04")))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, year, month int) core.Row {
	period := fmt.Sprintf("%04d-%02d", year, month)
	if month >= 1 && month <= 12 {
		period = fmt.Sprintf("%s %d", monthNames[month], year)
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("DESPRENDIBLE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7}),
		),
	)
}

func employeeRow(data apppayroll.PayslipData) core.Row {
	e := data.Employee
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(e.FullName(), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Código: %s   |   Área: %s   |   Cargo: %s",
				e.Code, nonEmpty(e.Department, "-"), nonEmpty(e.Position, "-"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func (g *PayslipGenerator) lineRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Left: 2})),
		col.New(4).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Right: 1})),
	)
}

func (g *PayslipGenerator) moneyRow(label string, amount decimal.Decimal, currency string) core.Row {
	return g.lineRow(label, g.fmt.WithCurrency(amount, currency))
}

func (g *PayslipGenerator) netRow(amount decimal.Decimal, currency string) core.Row {
	style := props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2}
	right := style
	right.Align = align.Right
	right.Right = 1
	return row.New(10).Add(
		col.New(6).Add(text.New("NETO A PAGAR", style)),
		col.New(6).Add(text.New(g.fmt.WithCurrency(amount, currency), right)),
	)
}

func footerRow(generatedAt string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Generado el "+generatedAt+". Documento calculado a partir de la asistencia registrada.",
			props.Text{Size: 6.5, Color: colorGray, Top: 4}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
