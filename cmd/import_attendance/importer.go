package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Columnas del archivo del reloj: employee_code;date;clock_in;clock_out;break_minutes;overtime_hours
const columns = 6

// row fila válida del CSV, ya convertida.
type row struct {
	line          int
	employeeCode  string
	date          time.Time
	clockIn       *time.Time
	clockOut      *time.Time
	breakMinutes  int
	overtimeHours decimal.Decimal
}

// rowError fila rechazada y su motivo.
type rowError struct {
	Line   int
	Reason string
}

// report resultado de la importación.
type report struct {
	Inserted   int
	Duplicates []rowError
	Rejected   []rowError
}

// decodeInput devuelve el contenido en UTF-8. encoding: auto | latin1 | utf8.
// En auto, un archivo que no es UTF-8 válido se lee como ISO-8859-1 (exportación típica de los relojes).
func decodeInput(r io.Reader, encoding string) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return bytes.NewReader(data), nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()), nil
	case "", "auto":
		if utf8.Valid(data) {
			return bytes.NewReader(data), nil
		}
		return transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada %q (auto|latin1|utf8)", encoding)
}

// parseRows lee el CSV separado por ';'. La cabecera es opcional.
// Las horas del archivo son locales a loc; se guardan en UTC.
func parseRows(r io.Reader, loc *time.Location) ([]row, []rowError, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows     []row
		rejected []rowError
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "employee_code") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		parsed, err := parseRow(line, rec, loc)
		if err != nil {
			rejected = append(rejected, rowError{Line: line, Reason: err.Error()})
			continue
		}
		rows = append(rows, parsed)
	}
	return rows, rejected, nil
}

func parseRow(line int, rec []string, loc *time.Location) (row, error) {
	if len(rec) != columns {
		return row{}, fmt.Errorf("se esperaban %d columnas, hay %d", columns, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	out := row{line: line, employeeCode: rec[0]}
	if out.employeeCode == "" {
		return row{}, errors.New("employee_code vacío")
	}

	date, err := time.Parse(time.DateOnly, rec[1])
	if err != nil {
		return row{}, fmt.Errorf("fecha inválida %q", rec[1])
	}
	out.date = date

	if out.clockIn, err = clockTime(date, loc, rec[2]); err != nil {
		return row{}, fmt.Errorf("clock_in: %w", err)
	}
	if out.clockOut, err = clockTime(date, loc, rec[3]); err != nil {
		return row{}, fmt.Errorf("clock_out: %w", err)
	}
	if out.clockIn == nil && out.clockOut != nil {
		return row{}, errors.New("clock_out sin clock_in")
	}
	// Turno nocturno: la salida cae al día siguiente.
	if out.clockIn != nil && out.clockOut != nil && out.clockOut.Before(*out.clockIn) {
		next := out.clockOut.AddDate(0, 0, 1)
		out.clockOut = &next
	}
	out.clockIn, out.clockOut = inUTC(out.clockIn), inUTC(out.clockOut)

	if rec[4] != "" {
		if out.breakMinutes, err = strconv.Atoi(rec[4]); err != nil || out.breakMinutes < 0 {
			return row{}, fmt.Errorf("break_minutes inválido %q", rec[4])
		}
	}

	out.overtimeHours = decimal.Zero
	if rec[5] != "" {
		// Los relojes configurados en español usan coma decimal.
		if out.overtimeHours, err = decimal.NewFromString(strings.Replace(rec[5], ",", ".", 1)); err != nil || out.overtimeHours.IsNegative() {
			return row{}, fmt.Errorf("overtime_hours inválido %q", rec[5])
		}
	}
	return out, nil
}

// clockTime combina la fecha con HH:MM (o HH:MM:SS) en la zona loc. Vacío = sin marcación.
func clockTime(date time.Time, loc *time.Location, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"15:04", time.TimeOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			v := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
			return &v, nil
		}
	}
	return nil, fmt.Errorf("hora inválida %q", s)
}

func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// importRows inserta las filas. Un registro repetido para (empleado, fecha) se informa
// como duplicado y no detiene la carga; un error de almacenamiento sí.
func importRows(
	ctx context.Context,
	employees repository.EmployeeRepository,
	attendance repository.AttendanceRepository,
	companyID string,
	rows []row,
	now time.Time,
) (report, error) {
	var rep report
	cache := make(map[string]*entity.Employee)
	for _, r := range rows {
		emp, ok := cache[r.employeeCode]
		if !ok {
			var err error
			if emp, err = employees.GetByCode(ctx, companyID, r.employeeCode); err != nil {
				return rep, fmt.Errorf("línea %d: buscar empleado: %w", r.line, err)
			}
			cache[r.employeeCode] = emp
		}
		if emp == nil {
			rep.Rejected = append(rep.Rejected, rowError{Line: r.line, Reason: "empleado desconocido " + r.employeeCode})
			continue
		}

		err := attendance.Create(ctx, &entity.AttendanceRecord{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			EmployeeID:    emp.ID,
			Date:          r.date,
			ClockIn:       r.clockIn,
			ClockOut:      r.clockOut,
			BreakMinutes:  r.breakMinutes,
			OvertimeHours: r.overtimeHours,
			CreatedAt:     now,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			rep.Duplicates = append(rep.Duplicates, rowError{Line: r.line, Reason: err.Error()})
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("línea %d: %w", r.line, err)
		}
		rep.Inserted++
	}
	return rep, nil
}
