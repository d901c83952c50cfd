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

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todo token se rechaza y delete/restore quedan inaccesibles")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	publisher, closePublisher := newPublisher(cfg.AMQP, log)
	defer closePublisher()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	companyUC := usecase.NewCompanyUseCase(repos, txRunner, publisher, infrapdf.NewMarotoPDFGenerator())
	countryUC := usecase.NewCountryUseCase(repos, txRunner, publisher)
	stateUC := usecase.NewStateUseCase(repos, txRunner, publisher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Catálogo API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		CountryUC:  countryUC,
		StateUC:    stateUC,
		JWTSecret:  cfg.JWT.Secret,
		Pagination: cfg.Pagination,
		Log:        log,
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

// newPublisher RabbitMQ si hay AMQP_URL; si no, o si el broker no responde, solo log.
func newPublisher(cfg config.AMQPConfig, log *logger.Logger) (usecase.AuditPublisher, func()) {
	if cfg.URL == "" {
		return events.NewLogPublisher(log), func() {}
	}
	rabbit, err := events.NewRabbitPublisher(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos solo en log")
		return events.NewLogPublisher(log), func() {}
	}
	log.Info().Str("exchange", cfg.Exchange).Msg("publicando eventos en RabbitMQ")
	return rabbit, func() {
		if err := rabbit.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar RabbitMQ")
		}
	}
}
