package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rmelara/facturacion-sv/internal/application/analytics"
)

// DashboardHandler maneja la petición del resumen del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  KPIs del día y del mes, serie diaria de 7 días, tops y stock bajo. Solo facturas activas.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
