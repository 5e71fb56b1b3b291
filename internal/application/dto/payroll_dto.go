package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneratePayrollRequest body para POST /api/payroll/runs; también query de la exportación.
type GeneratePayrollRequest struct {
	Year  int `json:"year" query:"year" validate:"required,min=2000,max=2100"`
	Month int `json:"month" query:"month" validate:"required,min=1,max=12"`
}

// PeriodQuery periodo por query string (?year=&month=).
type PeriodQuery struct {
	PageRequest
	Year  int `query:"year" validate:"required,min=2000,max=2100"`
	Month int `query:"month" validate:"required,min=1,max=12"`
}

// PayrollRecordResponse salida de un registro de nómina.
type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	Period          string          `json:"period"` // YYYY-MM
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	Tax             decimal.Decimal `json:"tax"`
	SocialSecurity  decimal.Decimal `json:"social_security"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// PayrollSkipDTO empleado no liquidado en la corrida y su motivo.
type PayrollSkipDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Code         string `json:"code"`
	Reason       string `json:"reason"`
}

// PayrollRunResponse resultado de una corrida de nómina.
type PayrollRunResponse struct {
	Period    string                  `json:"period"`
	Records   []PayrollRecordResponse `json:"records"`
	Skipped   []PayrollSkipDTO        `json:"skipped"`
	Generated int                     `json:"generated"`
}
