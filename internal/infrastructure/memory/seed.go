package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// IDs fijos del modo demo para poder probar la API sin consultar la base.
const (
	DemoCompanyID  = "00000000-0000-0000-0000-000000000001"
	DemoAccountID  = "00000000-0000-0000-0000-0000000000a1"
	DemoItemLowID  = "00000000-0000-0000-0000-0000000000b1"
	DemoItemOKID   = "00000000-0000-0000-0000-0000000000b2"
	DemoEmployee1  = "00000000-0000-0000-0000-0000000000c1"
	DemoEmployee2  = "00000000-0000-0000-0000-0000000000c2"
	DemoEmployee3  = "00000000-0000-0000-0000-0000000000c3"
	DemoUserDomain = "demo.local"
)

// SeedDemo carga una empresa de ejemplo: un usuario por rol (misma contraseña),
// una cuenta bancaria, dos ítems (uno bajo mínimo) y tres empleados con asistencia
// del mes anterior a now. El tercer empleado deja un turno abierto el día 15 si es hábil.
func SeedDemo(ctx context.Context, s *Store, passwordHash string, now time.Time) error {
	now = now.UTC()
	for i, role := range []string{entity.RoleAdmin, entity.RoleAccountant, entity.RoleStorekeeper, entity.RoleHR} {
		u := &entity.User{
			ID:           fmt.Sprintf("00000000-0000-0000-0000-0000000000f%d", i+1),
			CompanyID:    DemoCompanyID,
			Email:        role + "@" + DemoUserDomain,
			PasswordHash: passwordHash,
			Name:         "Demo " + role,
			Role:         role,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := NewUserRepository(s).Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", role, err)
		}
	}

	if err := NewAccountRepository(s).Create(ctx, &entity.Account{
		ID: DemoAccountID, CompanyID: DemoCompanyID, Code: "1110", Name: "Banco principal",
		Type: entity.AccountTypeBank, Currency: "RWF", Balance: decimal.NewFromInt(1_000_000),
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed account: %w", err)
	}

	items := NewInventoryItemRepository(s)
	for _, it := range []*entity.InventoryItem{
		{ID: DemoItemLowID, SKU: "CEM-50", Name: "Cemento 50kg", Unit: "bag", OnHand: 8,
			UnitPrice: decimal.NewFromInt(12_000), UnitCost: decimal.NewFromInt(9_500), MinStockLevel: 10, MaxStockLevel: 60},
		{ID: DemoItemOKID, SKU: "VAR-12", Name: "Varilla 12mm", Unit: "unit", OnHand: 50,
			UnitPrice: decimal.NewFromInt(7_000), UnitCost: decimal.NewFromInt(5_200), MinStockLevel: 20},
	} {
		it.CompanyID = DemoCompanyID
		it.CreatedAt, it.UpdatedAt = now, now
		if err := items.Create(ctx, it); err != nil {
			return fmt.Errorf("seed item %s: %w", it.SKU, err)
		}
	}

	employees := NewEmployeeRepository(s)
	for _, e := range []*entity.Employee{
		{ID: DemoEmployee1, Code: "E001", FirstName: "Aline", LastName: "Uwase", Department: "Finanzas", Position: "Contadora", BasicSalary: decimal.NewFromInt(2_000_000)},
		{ID: DemoEmployee2, Code: "E002", FirstName: "Eric", LastName: "Mugisha", Department: "Bodega", Position: "Almacenista", BasicSalary: decimal.NewFromInt(800_000)},
		{ID: DemoEmployee3, Code: "E003", FirstName: "Diane", LastName: "Ingabire", Department: "Ventas", Position: "Asesora", BasicSalary: decimal.NewFromInt(1_200_000)},
	} {
		e.CompanyID = DemoCompanyID
		e.Status = entity.EmployeeStatusActive
		e.HiredAt = now.AddDate(-1, 0, 0)
		e.CreatedAt, e.UpdatedAt = now, now
		if err := employees.Create(ctx, e); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.Code, err)
		}
	}

	// Días hábiles del mes anterior, 08:00-17:00 con 60 min de descanso.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	attendance := NewAttendanceRepository(s)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		for _, empID := range []string{DemoEmployee1, DemoEmployee2, DemoEmployee3} {
			in := d.Add(8 * time.Hour)
			out := d.Add(17 * time.Hour)
			rec := &entity.AttendanceRecord{
				ID: fmt.Sprintf("att-%s-%s", empID[len(empID)-2:], d.Format("20060102")), CompanyID: DemoCompanyID,
				EmployeeID: empID, Date: d, ClockIn: &in, ClockOut: &out, BreakMinutes: 60, CreatedAt: now,
			}
			if empID == DemoEmployee2 && d.Weekday() == time.Friday {
				rec.OvertimeHours = decimal.NewFromInt(2)
			}
			if empID == DemoEmployee3 && d.Day() == 15 {
				rec.ClockOut = nil
			}
			if err := attendance.Create(ctx, rec); err != nil {
				return fmt.Errorf("seed attendance: %w", err)
			}
		}
	}
	return nil
}
