package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord marcación de un empleado para un día.
// Como máximo un registro por (EmployeeID, Date).
type AttendanceRecord struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Date          time.Time // solo fecha (00:00 UTC)
	ClockIn       *time.Time
	ClockOut      *time.Time // nil = turno abierto
	BreakMinutes  int
	OvertimeHours decimal.Decimal // declaradas, no derivadas
	CreatedAt     time.Time
}
