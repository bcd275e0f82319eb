package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/bizflow-api/internal/application/analytics"
	"github.com/jhoicas/bizflow-api/internal/application/dto"
)

// ReportHandler reportes descargables y de rentabilidad.
type ReportHandler struct {
	reports *appanalytics.ReportUseCase
	margins *appanalytics.MarginsUseCase
	errs    errorMapper
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *appanalytics.ReportUseCase, margins *appanalytics.MarginsUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, margins: margins, errs: errorMapper{log: log}}
}

// Export godoc
// @Summary      Exportar reporte del negocio
// @Description  Planilla con hojas Resumen, Ventas, Clientes, Inventario, Gastos y Márgenes.
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return unauthorized(c)
	}
	data, filename, err := h.reports.Export(c.Context(), accountID)
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, h.reports.ContentType())
	return c.Send(data)
}

// GetMargins godoc
// @Summary      Reporte de márgenes por artículo
// @Description  Ranking por ganancia bruta del período con análisis de Pareto (80 %).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top_n       query  int     false  "Máx. artículos en el ranking (default 20, max 200)."
// @Success      200  {object}  dto.MarginsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/margins [get]
func (h *ReportHandler) GetMargins(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return unauthorized(c)
	}
	var req dto.MarginsReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "parámetros de consulta inválidos", Fields: validationFields(err),
		})
	}
	report, err := h.margins.GetMarginsReport(c.Context(), accountID, req)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(report)
}
