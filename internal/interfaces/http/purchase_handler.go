package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// PurchaseHandler maneja las peticiones HTTP de facturas de compra.
type PurchaseHandler struct {
	uc *billing.CreatePurchaseInvoiceUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *billing.CreatePurchaseInvoiceUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura de compra
// @Description  Repone stock por línea. El número externo duplicado se rechaza antes de mover inventario.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseInvoiceRequest  true  "Compra a registrar"
// @Success      201   {object}  dto.PurchaseInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Número de factura duplicado"
// @Router       /api/compras [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseInvoiceRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.PostPurchaseInvoice(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura de compra por ID
// @Tags         compras
// @Produce      json
// @Param        id   path      string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchase(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de compras
// @Tags         compras
// @Produce      json
// @Param        proveedor  query  string  false  "Coincidencia parcial del nombre del proveedor"
// @Param        desde      query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta      query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200  {array}  dto.PurchaseInvoiceResponse
// @Router       /api/compras [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.PurchaseInvoiceFilter{
		SupplierName: c.Query("proveedor"),
		From:         parseDateQuery(c.Query("desde"), false),
		To:           parseDateQuery(c.Query("hasta"), true),
	}
	out, err := h.uc.ListPurchases(c.Context(), filter, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
