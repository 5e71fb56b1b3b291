package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de empleado.
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusTerminated = "terminated"
)

// Employee representa un empleado con salario básico mensual.
type Employee struct {
	ID          string
	CompanyID   string
	Code        string // código en el reloj de asistencia
	FirstName   string
	LastName    string
	Department  string
	Position    string
	BasicSalary decimal.Decimal
	Status      string
	HiredAt     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName nombre para documentos.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
