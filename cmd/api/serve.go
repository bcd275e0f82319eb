package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/jhoicas/bizflow-api/docs"
	httpRouter "github.com/jhoicas/bizflow-api/internal/interfaces/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia el servidor HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET es obligatorio para servir la API")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := cmd.Context()
	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	deps, err := buildRouterDeps(cfg, b, log)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 20,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // planillas de importación
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	docPath, err := writeSwaggerDoc()
	if err != nil {
		return err
	}
	defer os.Remove(docPath)
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: docPath,
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

// writeSwaggerDoc renderiza la plantilla con el host actual en un archivo temporal.
func writeSwaggerDoc() (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("bizflow-swagger-%d.json", os.Getpid()))
	if err := os.WriteFile(path, []byte(docs.SwaggerInfo.ReadDoc()), 0o600); err != nil {
		return "", fmt.Errorf("escribir swagger: %w", err)
	}
	return path, nil
}
