package dto

import (
	"errors"
	"time"
)

// PageRequest paginación para listados. Valores fuera de rango se corrigen en DefaultPage.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Page sobre de listado paginado, común a todos los recursos.
type Page[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewPage arma el sobre; Items nunca es null en JSON.
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total}}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseDateRange convierte fechas YYYY-MM-DD de filtros; "to" es inclusivo (hasta el fin del día).
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if from != "" {
		v, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return nil, nil, errors.New("from debe ser YYYY-MM-DD")
		}
		f = &v
	}
	if to != "" {
		v, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return nil, nil, errors.New("to debe ser YYYY-MM-DD")
		}
		v = v.AddDate(0, 0, 1).Add(-time.Nanosecond)
		t = &v
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, errors.New("to es anterior a from")
	}
	return f, t, nil
}
