package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shyakx/erp-system/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct aplica las etiquetas validate y devuelve un mensaje legible, o "" si es válido.
func validateStruct(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// parseBody decodifica y valida el body JSON. ok=false si ya se respondió 400.
func parseBody[T any](c *fiber.Ctx) (T, bool, error) {
	var in T
	if err := c.BodyParser(&in); err != nil {
		return in, false, badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return in, false, badRequest(c, msg)
	}
	return in, true, nil
}

// paged es la forma común de los listados: query string -> filtro validado -> página.
// Limit/Offset fuera de rango los corrige dto.PageRequest.DefaultPage en el caso de uso.
func paged[Q any, T any](w ErrorWriter, fetch func(c *fiber.Ctx, companyID string, q Q) (*dto.Page[T], error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return unauthorized(c)
		}
		var q Q
		if err := c.QueryParser(&q); err != nil {
			return badRequest(c, "parámetros de consulta inválidos")
		}
		if msg := validateStruct(q); msg != "" {
			return badRequest(c, msg)
		}
		page, err := fetch(c, companyID, q)
		if err != nil {
			return w.write(c, err)
		}
		return c.JSON(page)
	}
}
