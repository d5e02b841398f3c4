package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
)

// SettingsHandler módulos activables de la empresa.
type SettingsHandler struct {
	modules *usecase.ModuleService
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(modules *usecase.ModuleService) *SettingsHandler {
	return &SettingsHandler{modules: modules}
}

// ListModules godoc
// @Summary      Listar módulos de la empresa
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Router       /api/settings/modules [get]
func (h *SettingsHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.modules.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetModule godoc
// @Summary      Activar o desactivar un módulo
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "scripts | notes | migration | pdf_export"
// @Param        body  body  dto.SetModuleRequest  true  "is_active, expires_at"
// @Success      200   {object}  dto.ModuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/modules/{name} [put]
func (h *SettingsHandler) SetModule(c *fiber.Ctx) error {
	var in dto.SetModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.modules.Set(c.UserContext(), GetCompanyID(c), c.Params("name"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// migrationRunner lo implementa *migration.Migrator.
type migrationRunner interface {
	Run(ctx context.Context) *dto.MigrationReport
}

// MigrationHandler copia del almacén local al remoto.
type MigrationHandler struct {
	runner migrationRunner
}

// NewMigrationHandler construye el handler. runner nil responde 503 (no hay almacén local configurado).
func NewMigrationHandler(runner migrationRunner) *MigrationHandler {
	return &MigrationHandler{runner: runner}
}

// Run godoc
// @Summary      Migrar el almacén local al remoto
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MigrationReport
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/admin/migration [post]
func (h *MigrationHandler) Run(c *fiber.Ctx) error {
	if h.runner == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "MIGRATION_UNAVAILABLE", Message: "no hay almacén local configurado para migrar"})
	}
	return c.JSON(h.runner.Run(c.UserContext()))
}
