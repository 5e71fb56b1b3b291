package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/application/ledger"
)

// LedgerHandler cuentas y asientos (protegido).
type LedgerHandler struct {
	post    *ledger.PostTransactionUseCase
	query   *ledger.AccountQueryUseCase
	errors  ErrorWriter
	history fiber.Handler
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(post *ledger.PostTransactionUseCase, query *ledger.AccountQueryUseCase, errors ErrorWriter) *LedgerHandler {
	h := &LedgerHandler{post: post, query: query, errors: errors}
	h.history = paged(errors, func(c *fiber.Ctx, companyID string, q dto.TransactionFilterRequest) (*dto.Page[dto.TransactionResponse], error) {
		return h.query.ListTransactions(c.UserContext(), companyID, c.Params("id"), q)
	})
	return h
}

// GetAccount godoc
// @Summary      Obtener cuenta
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/accounts/{id} [get]
func (h *LedgerHandler) GetAccount(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.query.GetAccount(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// PostTransaction godoc
// @Summary      Registrar asiento en una cuenta
// @Description  Crédito suma y débito resta. Los débitos pueden dejar saldo negativo.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la cuenta"
// @Param        body  body  dto.PostTransactionRequest  true  "direction (credit|debit), amount > 0"
// @Success      201   {object}  dto.PostTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/accounts/{id}/transactions [post]
func (h *LedgerHandler) PostTransaction(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseBody[dto.PostTransactionRequest](c)
	if !ok {
		return err
	}
	out, err := h.post.PostFromRequest(c.UserContext(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Historial de asientos de una cuenta
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID de la cuenta"
// @Param        direction  query  string  false  "credit | debit"
// @Param        category   query  string  false  "Categoría"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Page[dto.TransactionResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/accounts/{id}/transactions [get]
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	return h.history(c)
}
