package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/roteiro-api/internal/application/auth"
	"github.com/jhoicas/roteiro-api/internal/application/migration"
	"github.com/jhoicas/roteiro-api/internal/application/navigation"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/eventbus"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/htmltext"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/roteiro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/stepfiles"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/roteiro-api/internal/interfaces/http"
	"github.com/jhoicas/roteiro-api/pkg/config"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer backend.Close()
	repos := backend.Repos

	prom := metrics.New()

	// Sesiones y bus: Redis si está configurado, memoria si no (una sola instancia).
	localBus := eventbus.NewMemory()
	var (
		bus      ports.EventBus     = localBus
		sessions ports.SessionStore = eventbus.NewMemorySessions(time.Duration(cfg.Redis.SessionTTLMinutes) * time.Minute)
	)
	if cfg.Redis.URL != "" {
		client, err := redisstore.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessions = redisstore.NewSessionStore(client, time.Duration(cfg.Redis.SessionTTLMinutes)*time.Minute)
		redisBus := redisstore.NewBus(client, localBus, log)
		if err := redisBus.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("suscripción a Redis")
		}
		defer redisBus.Close()
		bus = redisBus
		log.Info().Str("origin", redisBus.Origin()).Msg("sesiones y bus en Redis")
	}

	catalog := scripts.NewCatalog(repos.Products, repos.Steps, bus)
	defer catalog.Close()

	sanitizer := htmltext.NewSanitizer()
	loader := stepfiles.NewLoader(cfg.StepFiles.Dir)

	operatorUC := usecase.NewOperatorUseCase(repos.Users, bus, log)
	companyUC := usecase.NewCompanyUseCase(repos.Companies, operatorUC, bus, log)
	moduleSvc := usecase.NewModuleService(repos.Companies, bus, log)
	productUC := usecase.NewProductUseCase(repos.Products, bus, log)
	stepUC := scripts.NewStepUseCase(repos.Products, repos.Steps, sanitizer, bus, log)
	importUC := scripts.NewImportUseCase(repos.Products, repos.Steps, loader, sanitizer, bus, prom, log)
	if backend.Tx != nil {
		importUC.WithTx(backend.Tx)
	}
	navigationUC := navigation.NewSessionUseCase(catalog, sessions, prom, log)
	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Migración local → remoto: solo con postgres y un archivo local presente
	var migrator *migration.Migrator
	if backend.Local != nil {
		migrator = migration.NewMigrator(*backend.Local, repos, bus, prom, log)
	}

	// Pasos desde archivos: sincronización al arrancar y re-importación al cambiar
	if err := importUC.SyncAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sincronización inicial de roteiros incompleta")
	}
	if cfg.StepFiles.Watch {
		watcher, err := stepfiles.NewWatcher(cfg.StepFiles.Dir, func(ctx context.Context, file string) {
			if _, err := importUC.ReimportFamily(ctx, file); err != nil {
				log.Warn().Err(err).Str("file", file).Msg("re-importación con errores")
			}
		}, log)
		if err != nil {
			log.Warn().Err(err).Msg("observador de roteiros no disponible")
		} else if err := watcher.Start(ctx); err != nil {
			log.Warn().Err(err).Str("dir", cfg.StepFiles.Dir).Msg("observador de roteiros no iniciado")
		} else {
			defer watcher.Stop()
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, prom))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Roteiro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": backend.Driver})
	})
	app.Get("/metrics", prom.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		ModuleService: moduleSvc,
		OperatorUC:    operatorUC,
		ProductUC:     productUC,
		TabulationUC:  usecase.NewTabulationUseCase(repos.Tabulations, bus, log),
		SituationUC:   usecase.NewSituationUseCase(repos.Situations, bus, log),
		ChannelUC:     usecase.NewChannelUseCase(repos.Channels, bus, log),
		NoteUC:        usecase.NewNoteUseCase(repos.Notes, bus, log),
		StepUC:        stepUC,
		ImportUC:      importUC,
		LintUC:        scripts.NewLintUseCase(repos.Products, repos.Steps),
		ExportUC:      scripts.NewExportUseCase(repos.Products, repos.Steps, infrapdf.NewMarotoPDFGenerator(htmltext.NewExtractor())),
		NavigationUC:  navigationUC,
		Migrator:      migrator,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
