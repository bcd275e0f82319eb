package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/bizflow-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc   *appanalytics.DashboardUseCase
	errs errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errorMapper{log: log}}
}

// GetSummary godoc
// @Summary      Resumen financiero
// @Description  Ventas, costo de lo vendido, margen bruto, gastos, ganancia neta, saldo por cobrar,
//
//	valor del inventario, artículos en stock bajo y principales deudores.
//	Las fechas se calculan en el servidor.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), accountID)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(summary)
}
