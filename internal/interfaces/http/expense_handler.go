package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bizflow-api/internal/application/billing"
	"github.com/jhoicas/bizflow-api/internal/application/dto"
)

// ExpenseHandler gastos de la tienda (protegido).
type ExpenseHandler struct {
	uc   *billing.ExpenseUseCase
	errs errorMapper
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *billing.ExpenseUseCase, log zerolog.Logger) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, errs: errorMapper{log: log}}
}

// Create godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "category y amount > 0; date opcional (hoy)"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return unauthorized(c)
	}
	var in dto.CreateExpenseRequest
	if verr := bindJSON(c, &in); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	out, err := h.uc.Create(c.Context(), accountID, in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.Context(), accountID)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(list)
}
