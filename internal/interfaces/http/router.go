package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/roteiro-api/internal/application/auth"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/migration"
	"github.com/jhoicas/roteiro-api/internal/application/navigation"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
	"github.com/jhoicas/roteiro-api/internal/domain/authz"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	ModuleService *usecase.ModuleService
	OperatorUC    *usecase.OperatorUseCase
	ProductUC     *usecase.ProductUseCase
	TabulationUC  *usecase.TabulationUseCase
	SituationUC   *usecase.SituationUseCase
	ChannelUC     *usecase.ChannelUseCase
	NoteUC        *usecase.NoteUseCase
	StepUC        *scripts.StepUseCase
	ImportUC      *scripts.ImportUseCase
	LintUC        *scripts.LintUseCase
	ExportUC      *scripts.ExportUseCase
	NavigationUC  *navigation.SessionUseCase
	Migrator      *migration.Migrator // nil si no hay almacén local
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	capability := RequireCapability
	module := func(name string) fiber.Handler {
		return RequireModule(name, deps.ModuleService, deps.Log)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Alta de empresa (público): crea el tenant, sus módulos y el administrador inicial
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/company", companyHandler.Me)

	// Navegación del roteiro
	navHandler := NewNavigationHandler(deps.NavigationUC)
	navGroup := protected.Group("/navigation", capability(authz.Navigate), module(entity.ModuleScripts))
	navGroup.Get("/", navHandler.Current)
	navGroup.Post("/start", navHandler.Start)
	navGroup.Post("/select", navHandler.Select)
	navGroup.Post("/back", navHandler.Back)
	navGroup.Post("/reset", navHandler.Reset)
	navGroup.Post("/search", navHandler.Search)

	// Productos: lectura para quien navega, escritura con manage_products
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products", module(entity.ModuleScripts))
	products.Get("/", capability(authz.Navigate), productHandler.List)
	products.Get("/available", capability(authz.Navigate), productHandler.Available)
	products.Post("/", capability(authz.ManageProducts), productHandler.Create)
	products.Get("/:id", capability(authz.Navigate), productHandler.GetByID)
	products.Put("/:id", capability(authz.ManageProducts), productHandler.Update)
	products.Delete("/:id", capability(authz.ManageProducts), productHandler.Delete)

	// Pasos del roteiro
	scriptHandler := NewScriptHandler(deps.StepUC, deps.ImportUC, deps.LintUC, deps.ExportUC)
	products.Get("/:id/script.pdf", capability(authz.ExportScripts), module(entity.ModulePDFExport), scriptHandler.PDF)
	steps := products.Group("/:id/steps")
	steps.Get("/", capability(authz.Navigate), scriptHandler.List)
	steps.Get("/lint", capability(authz.ManageScripts), scriptHandler.Lint)
	steps.Post("/import", capability(authz.ManageScripts), scriptHandler.Import)
	steps.Post("/", capability(authz.ManageScripts), scriptHandler.Create)
	steps.Get("/:stepId", capability(authz.Navigate), scriptHandler.Get)
	steps.Put("/:stepId", capability(authz.ManageScripts), scriptHandler.Update)
	steps.Delete("/:stepId", capability(authz.ManageScripts), scriptHandler.Delete)

	// Catálogos de apoyo
	NewCatalogHandler[dto.SaveTabulationRequest, dto.TabulationResponse, dto.TabulationListResponse](deps.TabulationUC, "tabulación no encontrada").
		Register(protected.Group("/tabulations", capability(authz.ManageTabulations)))
	NewCatalogHandler[dto.SaveSituationRequest, dto.SituationResponse, dto.SituationListResponse](deps.SituationUC, "situación no encontrada").
		Register(protected.Group("/situations", capability(authz.ManageSituations)))
	NewCatalogHandler[dto.SaveChannelRequest, dto.ChannelResponse, dto.ChannelListResponse](deps.ChannelUC, "canal no encontrado").
		Register(protected.Group("/channels", capability(authz.ManageChannels)))

	// Operadores
	operatorHandler := NewOperatorHandler(deps.OperatorUC)
	protected.Get("/operators/me", operatorHandler.Me)
	operators := protected.Group("/operators", capability(authz.ManageOperators))
	operators.Get("/", operatorHandler.List)
	operators.Post("/", operatorHandler.Create)
	operators.Get("/:id", operatorHandler.GetByID)
	operators.Put("/:id", operatorHandler.Update)
	operators.Delete("/:id", operatorHandler.Delete)

	// Notas privadas
	noteHandler := NewNoteHandler(deps.NoteUC)
	notes := protected.Group("/notes", capability(authz.ManageNotes), module(entity.ModuleNotes))
	notes.Get("/", noteHandler.List)
	notes.Post("/", noteHandler.Create)
	notes.Get("/:id", noteHandler.GetByID)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)

	// Configuración del tenant
	settingsHandler := NewSettingsHandler(deps.ModuleService)
	settings := protected.Group("/settings", capability(authz.ManageSettings))
	settings.Get("/modules", settingsHandler.ListModules)
	settings.Put("/modules/:name", settingsHandler.SetModule)

	// Migración local → remoto
	var runner migrationRunner
	if deps.Migrator != nil {
		runner = deps.Migrator
	}
	migrationHandler := NewMigrationHandler(runner)
	protected.Post("/admin/migration", capability(authz.RunMigration), module(entity.ModuleMigration), migrationHandler.Run)
}
