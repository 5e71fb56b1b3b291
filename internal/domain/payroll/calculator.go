// Package payroll calcula la nómina de un periodo a partir de asistencia y salario básico.
// Es una función pura: mismas entradas, mismo resultado.
package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// StandardMonthlyHours horas mensuales estándar para derivar la tarifa horaria.
const StandardMonthlyHours = 160

var (
	standardHours      = decimal.NewFromInt(StandardMonthlyHours)
	overtimeMultiplier = decimal.RequireFromString("1.5")
	taxRate            = decimal.RequireFromString("0.10")
	socialSecurityRate = decimal.RequireFromString("0.05")
	secondsPerHour     = decimal.NewFromInt(3600)
)

// OpenShiftPolicy decide qué hacer con marcaciones sin hora de salida.
type OpenShiftPolicy int

const (
	// OpenShiftReject falla con domain.ErrOpenShift (por defecto).
	OpenShiftReject OpenShiftPolicy = iota
	// OpenShiftMeasureAt mide el turno abierto hasta Input.EvaluatedAt.
	OpenShiftMeasureAt
)

// Input datos de cálculo de un empleado para un periodo.
type Input struct {
	BasicSalary decimal.Decimal
	Attendance  []*entity.AttendanceRecord
	OpenShifts  OpenShiftPolicy
	EvaluatedAt time.Time // solo con OpenShiftMeasureAt
}

// Result montos del periodo. Dinero redondeado a 2 decimales.
type Result struct {
	TotalHours      decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimePay     decimal.Decimal
	GrossPay        decimal.Decimal
	Tax             decimal.Decimal
	SocialSecurity  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// Calculate aplica:
//
//	overtimePay = overtimeHours × (basicSalary / 160) × 1.5
//	grossPay    = basicSalary + overtimePay
//	tax         = grossPay × 0.10
//	social      = grossPay × 0.05
//	netPay      = grossPay − (tax + social)
func Calculate(in Input) (Result, error) {
	if !in.BasicSalary.IsPositive() {
		return Result{}, domain.ErrInvalidSalary
	}
	if in.OpenShifts == OpenShiftMeasureAt && in.EvaluatedAt.IsZero() {
		return Result{}, fmt.Errorf("%w: falta el instante de evaluación para turnos abiertos", domain.ErrInvalidInput)
	}

	var workedSeconds int64
	overtime := decimal.Zero
	for _, rec := range in.Attendance {
		if rec == nil {
			continue
		}
		d, err := workedDuration(rec, in.OpenShifts, in.EvaluatedAt)
		if err != nil {
			return Result{}, err
		}
		workedSeconds += int64(d / time.Second)
		if rec.OvertimeHours.IsNegative() {
			return Result{}, fmt.Errorf("%w: horas extra negativas el %s", domain.ErrInvalidInput, rec.Date.Format("2006-01-02"))
		}
		overtime = overtime.Add(rec.OvertimeHours)
	}

	// Multiplicar antes de dividir evita arrastrar decimales periódicos de basic/160.
	overtimePay := overtime.Mul(in.BasicSalary).Mul(overtimeMultiplier).Div(standardHours).Round(2)
	gross := in.BasicSalary.Add(overtimePay)
	tax := gross.Mul(taxRate).Round(2)
	social := gross.Mul(socialSecurityRate).Round(2)
	deductions := tax.Add(social)

	return Result{
		TotalHours:      decimal.NewFromInt(workedSeconds).Div(secondsPerHour).Round(2),
		OvertimeHours:   overtime,
		OvertimePay:     overtimePay,
		GrossPay:        gross,
		Tax:             tax,
		SocialSecurity:  social,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions),
	}, nil
}

// workedDuration salida − entrada − descanso, nunca negativa.
// Sin hora de entrada el registro no suma.
func workedDuration(rec *entity.AttendanceRecord, policy OpenShiftPolicy, at time.Time) (time.Duration, error) {
	if rec.ClockIn == nil {
		return 0, nil
	}
	end := rec.ClockOut
	if end == nil {
		if policy != OpenShiftMeasureAt {
			return 0, fmt.Errorf("%w: %s", domain.ErrOpenShift, rec.Date.Format("2006-01-02"))
		}
		end = &at
	}
	worked := end.Sub(*rec.ClockIn) - time.Duration(rec.BreakMinutes)*time.Minute
	if worked < 0 {
		return 0, nil
	}
	return worked, nil
}

// PeriodBounds primer y último día (inclusive) de un mes, en UTC.
func PeriodBounds(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1), nil
}
