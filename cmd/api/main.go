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

	"github.com/mvieira/pedidos-pro/internal/application/fulfillment"
	"github.com/mvieira/pedidos-pro/internal/application/replenishment"
	"github.com/mvieira/pedidos-pro/internal/application/tracking"
	"github.com/mvieira/pedidos-pro/internal/application/usecase"
	infrapdf "github.com/mvieira/pedidos-pro/internal/infrastructure/pdf"
	"github.com/mvieira/pedidos-pro/internal/infrastructure/postgres"
	httpRouter "github.com/mvieira/pedidos-pro/internal/interfaces/http"
	"github.com/mvieira/pedidos-pro/internal/jobs"
	"github.com/mvieira/pedidos-pro/pkg/config"
	"github.com/mvieira/pedidos-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	trackingRepo := postgres.NewTrackingRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	allocateUC := fulfillment.NewAllocateOrderUseCase(txRunner, orderRepo)
	trackingUC := tracking.NewUseCase(trackingRepo, orderRepo)
	replenishUC := replenishment.NewUseCase(txRunner)

	productUC := usecase.NewProductUseCase(productRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, productRepo)
	recipeUC := usecase.NewRecipeUseCase(recipeRepo, productRepo)

	// PDF: folha de ordem de produção para o chão de fábrica
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	productionUC := usecase.NewProductionUseCase(productionRepo, productRepo, recipeRepo, pdfGenerator)

	replenishmentJob := jobs.NewReplenishmentJob(
		replenishUC, log, cfg.Jobs.ReplenishmentSchedule, cfg.Jobs.ReplenishmentLimit,
	)
	if err := replenishmentJob.Start(); err != nil {
		log.Fatal().Err(err).Msg("agendar job de reposição")
	}
	defer replenishmentJob.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pedidos Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		OrderUC:      orderUC,
		RecipeUC:     recipeUC,
		ProductionUC: productionUC,
		AllocateUC:   allocateUC,
		TrackingUC:   trackingUC,
		ReplenishUC:  replenishUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando o servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
