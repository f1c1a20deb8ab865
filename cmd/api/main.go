package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Cilindros-api/internal/application/movement"
	"github.com/jhoicas/Cilindros-api/internal/application/usecase"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	docbuilder "github.com/jhoicas/Cilindros-api/internal/domain/movement"
	inframetrics "github.com/jhoicas/Cilindros-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Cilindros-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cilindros-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/Cilindros-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Cilindros-api/internal/interfaces/http"
	"github.com/jhoicas/Cilindros-api/pkg/config"
	"github.com/jhoicas/Cilindros-api/pkg/logger"
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
		Bool("auth", cfg.JWT.Secret != "").
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.MigrationsPath).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var (
		movementMetrics movement.Metrics
		httpObserver    httpRouter.HTTPObserver
		metricsHandler  fiber.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := inframetrics.New(reg)
		movementMetrics, httpObserver = m, m
		metricsHandler = adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	settings := movement.Settings{
		Codes: docbuilder.Codes{
			Sucursal:     cfg.Numbering.Branch,
			TransacDocto: cfg.Numbering.TransactionType,
			Tipo:         cfg.Numbering.DocType,
			Prefijo:      cfg.Numbering.Prefix,
		},
		ZeroPad: cfg.Numbering.ZeroPad,
	}

	terceroRepo := postgres.NewTerceroRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool, entity.NumberingScope{
		Branch:          settings.Codes.Sucursal,
		TransactionType: settings.Codes.TransacDocto,
	})
	createUC := movement.NewCreateMovementUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewSequenceGenerator(pool),
		terceroRepo,
		settings,
		log,
		movementMetrics,
	)
	queryUC := movement.NewQueryUseCase(
		movementRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		infraxlsx.NewMovementExporter(),
	)
	terceroUC := usecase.NewTerceroUseCase(terceroRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	httpRouter.UseGlobalMiddleware(app, log, httpObserver)

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    "Cilindros API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Commands:       createUC,
		Queries:        queryUC,
		Terceros:       terceroUC,
		Validator:      httpRouter.NewRequestValidator(),
		MetricsHandler: metricsHandler,
		JWTSecret:      cfg.JWT.Secret,
		DefaultActor: entity.Actor{
			ID:       cfg.Identity.DefaultUserID,
			Username: cfg.Identity.DefaultUsername,
		},
		ServiceName: cfg.App.Name,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
