package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/navigation"
)

// NavigationHandler atención en curso del operador autenticado.
type NavigationHandler struct {
	uc *navigation.SessionUseCase
}

// NewNavigationHandler construye el handler.
func NewNavigationHandler(uc *navigation.SessionUseCase) *NavigationHandler {
	return &NavigationHandler{uc: uc}
}

// Current godoc
// @Summary      Estado de la atención
// @Tags         navigation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NavigationResponse
// @Router       /api/navigation [get]
func (h *NavigationHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar atención en el paso inicial del producto
// @Tags         navigation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartNavigationRequest  true  "Producto y tipos de atendimento/pessoa"
// @Success      200   {object}  dto.NavigationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/navigation/start [post]
func (h *NavigationHandler) Start(c *fiber.Ctx) error {
	var in dto.StartNavigationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.Start(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Elegir un botón del paso actual
// @Tags         navigation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectButtonRequest  true  "button_id"
// @Success      200   {object}  dto.NavigationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/navigation/select [post]
func (h *NavigationHandler) Select(c *fiber.Ctx) error {
	var in dto.SelectButtonRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ButtonID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "button_id es requerido"})
	}
	out, err := h.uc.Select(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Back godoc
// @Summary      Volver al paso anterior
// @Tags         navigation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NavigationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/navigation/back [post]
func (h *NavigationHandler) Back(c *fiber.Ctx) error {
	out, err := h.uc.Back(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Terminar la atención
// @Tags         navigation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NavigationResponse
// @Router       /api/navigation/reset [post]
func (h *NavigationHandler) Reset(c *fiber.Ctx) error {
	out, err := h.uc.Reset(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Saltar al primer paso cuyo título coincide
// @Tags         navigation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchStepRequest  true  "query"
// @Success      200   {object}  dto.NavigationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/navigation/search [post]
func (h *NavigationHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchStepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Search(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
