package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = "employee_code;date;clock_in;clock_out;break_minutes;overtime_hours\n" +
	"E001;2024-01-15;08:00;17:00;60;1,5\n" +
	"E001;2024-01-16;22:00;06:00;30;0\n" +
	"E002;2024-01-15;08:00;;60;\n" +
	"E001;2024-01-15;09:00;18:00;60;0\n" +
	"E009;2024-01-15;08:00;17:00;60;0\n" +
	"E001;15/01/2024;08:00;17:00;60;0\n" +
	"E001;2024-01-17;;17:00;60;0\n"

func TestParseRows(t *testing.T) {
	rows, rejected, err := parseRows(strings.NewReader(sample), time.UTC)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	require.Len(t, rejected, 2)
	assert.Equal(t, 7, rejected[0].Line)
	assert.Contains(t, rejected[1].Reason, "clock_out sin clock_in")

	assert.True(t, rows[0].overtimeHours.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 60, rows[0].breakMinutes)

	// Turno nocturno: salida al día siguiente.
	night := rows[1]
	assert.Equal(t, 8*time.Hour, night.clockOut.Sub(*night.clockIn))

	open := rows[2]
	require.NotNil(t, open.clockIn)
	assert.Nil(t, open.clockOut)
	assert.True(t, open.overtimeHours.IsZero())
}

func TestParseRows_ZonaDelReloj(t *testing.T) {
	cat := time.FixedZone("CAT", 2*3600)
	rows, rejected, err := parseRows(strings.NewReader(
		"E001;2024-01-15;08:00;17:00;60;0\n"+
			"E001;2024-01-16;01:30;09:00;0;0\n"), cat)
	require.NoError(t, err)
	require.Empty(t, rejected)
	require.Len(t, rows, 2)

	day := rows[0]
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), day.date)
	assert.Equal(t, time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC), *day.clockIn)
	assert.Equal(t, time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC), *day.clockOut)
	assert.Equal(t, time.UTC, day.clockIn.Location())

	// 01:30 local cae el día anterior en UTC; la fecha de la marcación no cambia.
	early := rows[1]
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), early.date)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC), *early.clockIn)
}

func TestDecodeInput_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("E001;2024-01-15;08:00;17:00;60;0 # Ñandú\n")
	require.NoError(t, err)

	r, err := decodeInput(strings.NewReader(raw), "auto")
	require.NoError(t, err)
	decoded, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Ñandú")

	_, err = decodeInput(strings.NewReader(raw), "ebcdic")
	assert.Error(t, err)
}

func TestImportRows_ReportsDuplicatesAndUnknown(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	employees := memory.NewEmployeeRepository(s)
	for _, e := range []*entity.Employee{
		{ID: "e-1", CompanyID: "c-1", Code: "E001", FirstName: "A", BasicSalary: decimal.NewFromInt(1), Status: entity.EmployeeStatusActive},
		{ID: "e-2", CompanyID: "c-1", Code: "E002", FirstName: "B", BasicSalary: decimal.NewFromInt(1), Status: entity.EmployeeStatusActive},
	} {
		require.NoError(t, employees.Create(ctx, e))
	}
	attendance := memory.NewAttendanceRepository(s)

	rows, _, err := parseRows(strings.NewReader(sample), time.UTC)
	require.NoError(t, err)
	rep, err := importRows(ctx, employees, attendance, "c-1", rows, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Inserted)
	require.Len(t, rep.Duplicates, 1)
	assert.Equal(t, 5, rep.Duplicates[0].Line)
	require.Len(t, rep.Rejected, 1)
	assert.Contains(t, rep.Rejected[0].Reason, "E009")

	list, err := attendance.ListByEmployeeAndPeriod(ctx, "e-1",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
