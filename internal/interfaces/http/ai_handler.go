package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/usecase"
)

// AIHandler asistente de negocio.
type AIHandler struct {
	uc   *usecase.AIUseCase
	errs errorMapper
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase, log zerolog.Logger) *AIHandler {
	return &AIHandler{uc: uc, errs: errorMapper{log: log}}
}

// Ask godoc
// @Summary      Consultar al asistente
// @Description  Envía el resumen financiero de la tienda y la pregunta al proveedor configurado
//
//	(AI_PROVIDER). Sin proveedor responde 503. Timeout interno de 15 s.
//
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssistantRequest  true  "question"
// @Success      200   {object}  dto.AssistantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/assistant [post]
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return unauthorized(c)
	}
	var req dto.AssistantRequest
	if verr := bindJSON(c, &req); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	out, err := h.uc.Ask(c.Context(), accountID, req)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
