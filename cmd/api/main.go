package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // zonas horarias de los teatros aunque la imagen no traiga tzdata

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Concesiones-api/docs"
	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Concesiones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/redislock"
	httpRouter "github.com/jhoicas/Concesiones-api/internal/interfaces/http"
	"github.com/jhoicas/Concesiones-api/pkg/config"
	"github.com/jhoicas/Concesiones-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("timezone", cfg.Ledger.Timezone).
		Str("storage", cfg.Ledger.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner ledger.TxRunner
		stock    repository.ProductStockSyncer
	)
	switch cfg.Ledger.Storage {
	case "memory":
		txRunner = memory.NewLedgerStore()
		stock = memory.NewProductStock()
		log.Warn().Msg("kardex en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema del kardex")
		}
		txRunner = postgres.NewTxRunner(pool)
		stock = postgres.NewProductStockRepository(pool)
	}

	// Bloqueo por (teatro, producto): Redis si hay varias réplicas, si no un mutex del proceso.
	var locker ledger.KeyLocker = memory.NewKeyMutex()
	if cfg.Redis.Enabled() {
		client, err := redislock.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		locker = redislock.New(client, redislock.Options{TTL: cfg.Ledger.LockTTL})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("bloqueo distribuido en Redis")
	}

	ledgerSvc := ledger.NewService(txRunner, locker, stock, ledger.Options{
		Location:   cfg.Ledger.Location,
		MaxRetries: cfg.Ledger.MaxRetries,
		Logger:     log,
		Renderer:   infrapdf.NewLedgerReport(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerSvc,
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
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
