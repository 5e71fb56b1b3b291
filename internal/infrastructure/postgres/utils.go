package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// filter arma cláusulas WHERE con placeholders $n numerados en orden.
type filter struct {
	conds []string
	args  []any
}

func newFilter(cond string, arg any) *filter {
	f := &filter{}
	return f.and(cond, arg)
}

// and agrega "cond" reemplazando ? por el siguiente placeholder.
func (f *filter) and(cond string, arg any) *filter {
	f.args = append(f.args, arg)
	f.conds = append(f.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(f.args)), 1))
	return f
}

func (f *filter) where() string {
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// page devuelve " LIMIT $n OFFSET $m" y los args completos.
func (f *filter) page(limit, offset int) (string, []any) {
	n := len(f.args)
	args := append(append([]any{}, f.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// nullString convierte "" a NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
