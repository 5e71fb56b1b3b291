package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/application/payroll"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PayrollHandler corridas, registros y documentos de nómina (protegido).
type PayrollHandler struct {
	generate *payroll.GeneratePayrollUseCase
	records  *payroll.RecordUseCase
	errors   ErrorWriter
	list     fiber.Handler
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(generate *payroll.GeneratePayrollUseCase, records *payroll.RecordUseCase, errors ErrorWriter) *PayrollHandler {
	h := &PayrollHandler{generate: generate, records: records, errors: errors}
	h.list = paged(errors, func(c *fiber.Ctx, companyID string, q dto.PeriodQuery) (*dto.Page[dto.PayrollRecordResponse], error) {
		return h.records.ListByPeriod(c.UserContext(), companyID, q)
	})
	return h
}

// Generate godoc
// @Summary      Generar nómina del periodo
// @Description  Liquida a todos los empleados activos. Los ya liquidados, con turno abierto o
// @Description  salario inválido se informan en skipped. Una sola corrida por empresa y periodo.
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GeneratePayrollRequest  true  "year, month"
// @Success      201   {object}  dto.PayrollRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payroll/runs [post]
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseBody[dto.GeneratePayrollRequest](c)
	if !ok {
		return err
	}
	out, err := h.generate.Generate(c.UserContext(), companyID, userID, in.Year, in.Month)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecords godoc
// @Summary      Registros de nómina del periodo
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        year    query  int  true   "Año"
// @Param        month   query  int  true   "Mes (1-12)"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.Page[dto.PayrollRecordResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payroll/records [get]
func (h *PayrollHandler) ListRecords(c *fiber.Ctx) error {
	return h.list(c)
}

// Payslip godoc
// @Summary      Desprendible de pago en PDF
// @Tags         payroll
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del registro de nómina"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/records/{id}/payslip [get]
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	data, filename, err := h.records.DownloadPayslip(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return h.errors.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Export godoc
// @Summary      Planilla XLSX del periodo
// @Tags         payroll
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes (1-12)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payroll/export [get]
func (h *PayrollHandler) Export(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var q dto.GeneratePayrollRequest
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "parámetros de consulta inválidos")
	}
	if msg := validateStruct(q); msg != "" {
		return badRequest(c, msg)
	}
	data, filename, err := h.records.ExportPeriod(c.UserContext(), companyID, q.Year, q.Month)
	if err != nil {
		return h.errors.write(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
