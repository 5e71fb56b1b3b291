// import_attendance carga marcaciones del reloj de asistencia desde un CSV.
//
// Uso: go run ./cmd/import_attendance -company <uuid> [-encoding auto|latin1|utf8] [-tz Africa/Kigali] archivo.csv
//
// Formato (separador ';', cabecera opcional):
//
//	employee_code;date;clock_in;clock_out;break_minutes;overtime_hours
//	E001;2024-01-15;08:00;17:00;60;0
//	E003;2024-01-15;08:00;;60;0      <- turno abierto
//
// Las horas se interpretan en la zona -tz (por defecto UTC) y se guardan en UTC;
// la fecha de la marcación es la del archivo.
//
// Usa la misma configuración de base de datos que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shyakx/erp-system/internal/infrastructure/postgres"
	"github.com/shyakx/erp-system/pkg/config"
	"github.com/shyakx/erp-system/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa dueña de los empleados")
	encoding := flag.String("encoding", "auto", "codificación del archivo: auto, latin1 o utf8")
	tz := flag.String("tz", "UTC", "zona horaria del reloj (IANA), p. ej. Africa/Kigali")
	flag.Parse()
	if *companyID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_attendance -company <uuid> [-encoding auto|latin1|utf8] [-tz zona] archivo.csv")
		os.Exit(2)
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Zona horaria %q: %v\n", *tz, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("import_attendance")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	in, err := decodeInput(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	rows, rejected, err := parseRows(in, loc)
	if err != nil {
		log.Fatal().Err(err).Msg("interpretar CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rep, err := importRows(ctx,
		postgres.NewEmployeeRepository(pool),
		postgres.NewAttendanceRepository(pool),
		*companyID, rows, time.Now().UTC())
	rep.Rejected = append(rejected, rep.Rejected...)
	for _, r := range rep.Rejected {
		log.Warn().Int("line", r.Line).Str("reason", r.Reason).Msg("fila rechazada")
	}
	for _, r := range rep.Duplicates {
		log.Warn().Int("line", r.Line).Str("reason", r.Reason).Msg("marcación duplicada")
	}
	if err != nil {
		log.Fatal().Err(err).Int("inserted", rep.Inserted).Msg("importación interrumpida")
	}
	log.Info().
		Int("inserted", rep.Inserted).
		Int("duplicates", len(rep.Duplicates)).
		Int("rejected", len(rep.Rejected)).
		Msg("importación finalizada")
}
