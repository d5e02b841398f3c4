// Command roteiroctl tareas de operación sobre el almacén: migración local → remoto,
// importación de familias de pasos y revisión de roteiros.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/eventbus"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/storage"
	"github.com/jhoicas/roteiro-api/pkg/config"
	"github.com/jhoicas/roteiro-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	jsonOut  bool
)

var rootCmd = &cobra.Command{
	Use:           "roteiroctl",
	Short:         "Operación del backend de roteiros",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (trace, debug, info, warn, error); por defecto LOG_LEVEL")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "imprimir el resultado como JSON")
	rootCmd.AddCommand(migrateCmd, importStepsCmd, lintScriptCmd, companiesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env configuración, logger y backend abiertos para un comando.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	backend *storage.Backend
	redis   *redis.Client
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.App.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log := logger.New(logger.Config{Env: "development", Level: level})
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, backend: backend}, nil
}

// bus publica en Redis si está configurado, para que las instancias de la API invaliden su caché.
func (e *env) bus(ctx context.Context) ports.EventBus {
	local := eventbus.NewMemory()
	if e.cfg.Redis.URL == "" {
		return local
	}
	client, err := redisstore.Connect(ctx, e.cfg.Redis.URL)
	if err != nil {
		e.log.Warn().Err(err).Msg("Redis no disponible; los cambios no se notificarán a la API")
		return local
	}
	e.redis = client
	return redisstore.NewBus(client, local, e.log)
}

func (e *env) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if err := e.backend.Close(); err != nil {
		e.log.Warn().Err(err).Msg("cerrar almacenamiento")
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
