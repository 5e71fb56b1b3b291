package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shyakx/erp-system/internal/application/auth"
	"github.com/shyakx/erp-system/internal/application/dto"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	errors ErrorWriter
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, errors ErrorWriter) *AuthHandler {
	return &AuthHandler{uc: uc, errors: errors}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	in, ok, err := parseBody[dto.LoginRequest](c)
	if !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}
