package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
)

// ScriptHandler pasos del roteiro de un producto: CRUD, importación, lint y PDF.
type ScriptHandler struct {
	steps  *scripts.StepUseCase
	imp    *scripts.ImportUseCase
	lint   *scripts.LintUseCase
	export *scripts.ExportUseCase
}

// NewScriptHandler construye el handler.
func NewScriptHandler(steps *scripts.StepUseCase, imp *scripts.ImportUseCase, lint *scripts.LintUseCase, export *scripts.ExportUseCase) *ScriptHandler {
	return &ScriptHandler{steps: steps, imp: imp, lint: lint, export: export}
}

// List godoc
// @Summary      Listar pasos del producto
// @Tags         scripts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StepListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps [get]
func (h *ScriptHandler) List(c *fiber.Ctx) error {
	out, err := h.steps.List(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear paso
// @Tags         scripts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.SaveStepRequest  true  "Paso"
// @Success      201   {object}  dto.StepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps [post]
func (h *ScriptHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveStepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.steps.Create(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener paso
// @Tags         scripts
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del producto"
// @Param        stepId  path  string  true  "ID del paso"
// @Success      200  {object}  dto.StepResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps/{stepId} [get]
func (h *ScriptHandler) Get(c *fiber.Ctx) error {
	out, err := h.steps.Get(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("stepId"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "paso no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar paso
// @Tags         scripts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del producto"
// @Param        stepId  path  string  true  "ID del paso"
// @Param        body    body  dto.SaveStepRequest  true  "Paso"
// @Success      200  {object}  dto.StepResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps/{stepId} [put]
func (h *ScriptHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveStepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.steps.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("stepId"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "paso no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar paso
// @Tags         scripts
// @Security     Bearer
// @Param        id      path  string  true  "ID del producto"
// @Param        stepId  path  string  true  "ID del paso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps/{stepId} [delete]
func (h *ScriptHandler) Delete(c *fiber.Ctx) error {
	if err := h.steps.Delete(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("stepId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar pasos desde una familia de archivos
// @Tags         scripts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ImportStepsRequest  true  "file (roteiro-ativo.json | roteiro-receptivo.json | roteiro-pj.json), bind"
// @Success      200   {object}  dto.ImportStepsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps/import [post]
func (h *ScriptHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportStepsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.imp.Import(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Lint godoc
// @Summary      Revisar referencias colgantes y pasos inalcanzables
// @Tags         scripts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  navigation.LintReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/steps/lint [get]
func (h *ScriptHandler) Lint(c *fiber.Ctx) error {
	out, err := h.lint.Lint(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar el roteiro en PDF
// @Tags         scripts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/script.pdf [get]
func (h *ScriptHandler) PDF(c *fiber.Ctx) error {
	out, err := h.export.ScriptPDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="roteiro-`+c.Params("id")+`.pdf"`)
	return c.Send(out)
}
