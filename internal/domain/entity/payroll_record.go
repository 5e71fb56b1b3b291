package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord resultado calculado de un periodo para un empleado.
// Es derivado de asistencia + salario y no se edita a mano.
type PayrollRecord struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	PeriodYear      int
	PeriodMonth     int
	BasicSalary     decimal.Decimal
	TotalHours      decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimePay     decimal.Decimal
	GrossPay        decimal.Decimal
	Tax             decimal.Decimal
	SocialSecurity  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	GeneratedAt     time.Time
	GeneratedBy     string
}
