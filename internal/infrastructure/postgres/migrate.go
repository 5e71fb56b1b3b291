package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate aplica los scripts de schema/ en orden alfabético. Son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return nil, fmt.Errorf("migrate: listar scripts: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		sql, err := schemaFS.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("migrate: leer %s: %w", f, err)
		}
		// Exec sin args usa el protocolo simple: admite varias sentencias.
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return nil, fmt.Errorf("migrate: aplicar %s: %w", f, err)
		}
	}
	return files, nil
}
