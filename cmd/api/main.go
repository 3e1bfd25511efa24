package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gbirreria/gb-api/internal/application/auth"
	"github.com/gbirreria/gb-api/internal/application/catalog"
	"github.com/gbirreria/gb-api/internal/application/closeout"
	"github.com/gbirreria/gb-api/internal/application/export"
	"github.com/gbirreria/gb-api/internal/application/lots"
	"github.com/gbirreria/gb-api/internal/application/movements"
	"github.com/gbirreria/gb-api/internal/application/staff"
	"github.com/gbirreria/gb-api/internal/application/stock"
	infraexcel "github.com/gbirreria/gb-api/internal/infrastructure/excel"
	infrapdf "github.com/gbirreria/gb-api/internal/infrastructure/pdf"
	"github.com/gbirreria/gb-api/internal/infrastructure/postgres"
	httpRouter "github.com/gbirreria/gb-api/internal/interfaces/http"
	"github.com/gbirreria/gb-api/pkg/config"
	"github.com/gbirreria/gb-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carica configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("avvio applicazione")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	closeoutRepo := postgres.NewCloseoutRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := stock.NewEngine(txRunner)
	catalogUC := catalog.NewUseCase(txRunner, engine, productRepo, movementRepo)
	lotUC := lots.NewUseCase(txRunner, lotRepo)
	movementUC := movements.NewUseCase(movementRepo, productRepo)
	staffUC := staff.NewUseCase(employeeRepo)
	closeoutUC := closeout.NewUseCase(closeoutRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	exportUC := export.NewUseCase(
		productRepo, closeoutRepo,
		infrapdf.NewMarotoPDFGenerator(),
		infraexcel.NewExcelizeWorkbook(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		LotUC:      lotUC,
		MovementUC: movementUC,
		StaffUC:    staffUC,
		CloseoutUC: closeoutUC,
		AuthUC:     authUC,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP terminato")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("segnale di arresto ricevuto, chiusura del server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arresto del server")
	}

	log.Info().Msg("applicazione fermata")
}
