package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/shyakx/erp-system/internal/application/auth"
	"github.com/shyakx/erp-system/internal/application/inventory"
	"github.com/shyakx/erp-system/internal/application/ledger"
	"github.com/shyakx/erp-system/internal/application/payroll"
	dompayroll "github.com/shyakx/erp-system/internal/domain/payroll"
	"github.com/shyakx/erp-system/internal/domain/repository"
	"github.com/shyakx/erp-system/internal/infrastructure/excel"
	"github.com/shyakx/erp-system/internal/infrastructure/memory"
	infrapdf "github.com/shyakx/erp-system/internal/infrastructure/pdf"
	"github.com/shyakx/erp-system/internal/infrastructure/postgres"
	infraredis "github.com/shyakx/erp-system/internal/infrastructure/redis"
	httpRouter "github.com/shyakx/erp-system/internal/interfaces/http"
	"github.com/shyakx/erp-system/pkg/config"
	"github.com/shyakx/erp-system/pkg/logger"
)

// stores puertos de persistencia elegidos al arrancar (PostgreSQL o memoria).
type stores struct {
	users       repository.UserRepository
	accounts    repository.AccountRepository
	txs         repository.TransactionRepository
	items       repository.InventoryItemRepository
	movements   repository.InventoryMovementRepository
	employees   repository.EmployeeRepository
	attendance  repository.AttendanceRepository
	payroll     repository.PayrollRepository
	inventoryTx inventory.TxRunner
	ledgerTx    ledger.TxRunner
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("demo", cfg.App.DemoMode).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		// Solo llega vacío en development o demo; los tokens no sobreviven un reinicio.
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio")
	}

	ctx := context.Background()
	var st stores
	if cfg.App.DemoMode {
		st, err = demoStores(ctx, cfg)
	} else {
		st, err = postgresStores(ctx, cfg, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	var locker payroll.RunLocker = memory.NewRunLocker()
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("address", cfg.Redis.Address).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = infraredis.NewRunLocker(rdb)
		log.Info().Str("address", cfg.Redis.Address).Msg("lock de nómina en Redis")
	}

	openShifts := dompayroll.OpenShiftReject
	if cfg.Payroll.OpenShift == "measure" {
		openShifts = dompayroll.OpenShiftMeasureAt
	}

	errs := httpRouter.NewErrorWriter(log.Component("http"))
	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(st.users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		PostTransaction:  ledger.NewPostTransactionUseCase(st.ledgerTx),
		AccountQuery:     ledger.NewAccountQueryUseCase(st.accounts, st.txs),
		RegisterMovement: inventory.NewRegisterMovementUseCase(st.inventoryTx),
		StockQuery:       inventory.NewStockQueryUseCase(st.items, st.movements),
		GeneratePayroll: payroll.NewGeneratePayrollUseCase(
			st.employees, st.attendance, st.payroll, locker, openShifts, log.Component("payroll"),
		),
		PayrollRecords: payroll.NewRecordUseCase(
			st.payroll, st.employees,
			infrapdf.NewPayslipGenerator("es"),
			excel.NewPayrollExporter(),
			payroll.DocumentConfig{CompanyName: cfg.Payroll.CompanyName, Currency: cfg.Payroll.Currency},
		),
		Errors:    errs,
		JWTSecret: cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errs.FiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP System API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "demo": cfg.App.DemoMode})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func postgresStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (stores, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return stores{}, err
	}
	if cfg.DB.Migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return stores{}, err
		}
		log.Info().Strs("files", applied).Msg("esquema aplicado")
	}
	txRunner := postgres.NewTxRunner(pool)
	return stores{
		users:       postgres.NewUserRepository(pool),
		accounts:    postgres.NewAccountRepository(pool),
		txs:         postgres.NewTransactionRepository(pool),
		items:       postgres.NewInventoryItemRepository(pool),
		movements:   postgres.NewInventoryMovementRepository(pool),
		employees:   postgres.NewEmployeeRepository(pool),
		attendance:  postgres.NewAttendanceRepository(pool),
		payroll:     postgres.NewPayrollRepository(pool),
		inventoryTx: txRunner,
		ledgerTx:    txRunner,
		close:       pool.Close,
	}, nil
}

func demoStores(ctx context.Context, cfg *config.Config) (stores, error) {
	s := memory.NewStore()
	hash, err := auth.HashPassword(cfg.App.DemoPass)
	if err != nil {
		return stores{}, err
	}
	if err := memory.SeedDemo(ctx, s, hash, time.Now()); err != nil {
		return stores{}, err
	}
	txRunner := memory.NewTxRunner(s)
	return stores{
		users:       memory.NewUserRepository(s),
		accounts:    memory.NewAccountRepository(s),
		txs:         memory.NewTransactionRepository(s),
		items:       memory.NewInventoryItemRepository(s),
		movements:   memory.NewInventoryMovementRepository(s),
		employees:   memory.NewEmployeeRepository(s),
		attendance:  memory.NewAttendanceRepository(s),
		payroll:     memory.NewPayrollRepository(s),
		inventoryTx: txRunner,
		ledgerTx:    txRunner,
		close:       func() {},
	}, nil
}
