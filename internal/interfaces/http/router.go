package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shyakx/erp-system/internal/application/auth"
	"github.com/shyakx/erp-system/internal/application/inventory"
	"github.com/shyakx/erp-system/internal/application/ledger"
	"github.com/shyakx/erp-system/internal/application/payroll"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	PostTransaction  *ledger.PostTransactionUseCase
	AccountQuery     *ledger.AccountQueryUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockQuery       *inventory.StockQueryUseCase
	GeneratePayroll  *payroll.GeneratePayrollUseCase
	PayrollRecords   *payroll.RecordUseCase
	Errors           ErrorWriter
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Errors)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro mayor
	ledgerHandler := NewLedgerHandler(deps.PostTransaction, deps.AccountQuery, deps.Errors)
	accounts := protected.Group("/ledger/accounts", RequireRole(entity.RoleAdmin, entity.RoleAccountant))
	accounts.Get("/:id", ledgerHandler.GetAccount)
	accounts.Post("/:id/transactions", ledgerHandler.PostTransaction)
	accounts.Get("/:id/transactions", ledgerHandler.ListTransactions)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockQuery, deps.Errors)
	inv := protected.Group("/inventory", RequireRole(entity.RoleAdmin, entity.RoleStorekeeper))
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Post("/items/:id/movements", inventoryHandler.RegisterMovement)
	inv.Get("/items/:id/movements", inventoryHandler.ListMovements)

	// Nómina
	payrollHandler := NewPayrollHandler(deps.GeneratePayroll, deps.PayrollRecords, deps.Errors)
	pay := protected.Group("/payroll", RequireRole(entity.RoleAdmin, entity.RoleHR))
	pay.Post("/runs", payrollHandler.Generate)
	pay.Get("/records", payrollHandler.ListRecords)
	pay.Get("/records/:id/payslip", payrollHandler.Payslip)
	pay.Get("/export", payrollHandler.Export)
}
