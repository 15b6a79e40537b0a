package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturas de venta, incluidas
// sus dos representaciones impresas.
type InvoiceHandler struct {
	uc    *billing.CreateSalesInvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.CreateSalesInvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Emitir factura de venta
// @Description  Descuenta stock línea por línea con reversa total ante cualquier falla.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesInvoiceRequest  true  "Factura a emitir"
// @Success      201   {object}  dto.SalesInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente (details: producto/solicitado/disponible)"
// @Router       /api/facturas [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesInvoiceRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.PostSalesInvoice(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Description  Las facturas anuladas también se recuperan, con estado anulado.
// @Tags         facturas
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.SalesInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas de venta
// @Tags         facturas
// @Produce      json
// @Param        cliente  query  string  false  "ID del cliente"
// @Param        estado   query  string  false  "activo | anulado"
// @Param        desde    query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta    query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200  {array}  dto.SalesInvoiceResponse
// @Router       /api/facturas [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.SalesInvoiceFilter{
		ClientID: c.Query("cliente"),
		Status:   c.Query("estado"),
		From:     parseDateQuery(c.Query("desde"), false),
		To:       parseDateQuery(c.Query("hasta"), true),
	}
	out, err := h.uc.ListInvoices(c.Context(), filter, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular factura
// @Description  Marca la factura como anulada. No repone stock.
// @Tags         facturas
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      204  "Anulada"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Ya estaba anulada"
// @Router       /api/facturas/{id}/anular [put]
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.VoidInvoice(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RenderPDF godoc
// @Summary      Factura en PDF (A4)
// @Tags         facturas
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/pdf [get]
func (h *InvoiceHandler) RenderPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.RenderFull(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// RenderTicket godoc
// @Summary      Ticket en PDF (80 mm)
// @Tags         facturas
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/ticket [get]
func (h *InvoiceHandler) RenderTicket(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.RenderReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parseDateQuery interpreta un parámetro de fecha YYYY-MM-DD. endOfDay mueve
// la marca al final del día para que "hasta" sea inclusivo.
func parseDateQuery(s string, endOfDay bool) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
