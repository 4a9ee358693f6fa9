package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/creditcard-api/internal/application/usecase"
	"github.com/jhoicas/creditcard-api/internal/domain/cardnumber"
	infraaccounts "github.com/jhoicas/creditcard-api/internal/infrastructure/accounts"
	infraantifraud "github.com/jhoicas/creditcard-api/internal/infrastructure/antifraud"
	infrapdf "github.com/jhoicas/creditcard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/creditcard-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/creditcard-api/internal/interfaces/http"
	"github.com/jhoicas/creditcard-api/internal/worker"
	"github.com/jhoicas/creditcard-api/pkg/config"
	"github.com/jhoicas/creditcard-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	cardRepo := postgres.NewCardRepository(pool)
	operationRepo := postgres.NewOperationRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	antiFraudGW := infraantifraud.NewClient(cfg.Gateways.AntiFraudBaseURL)
	accountsGW := infraaccounts.NewClient(cfg.Gateways.AccountsBaseURL)

	generator := cardnumber.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

	cardUC := usecase.NewCardUseCase(cardRepo, antiFraudGW, accountsGW, generator, usecase.CardConfig{
		BIN:                cfg.Card.BIN,
		NumberLength:       cfg.Card.NumberLength,
		SecurityCodeLength: cfg.Card.SecurityCodeLength,
	}, log, nil)
	operationUC := usecase.NewOperationUseCase(txRunner, cardRepo, operationRepo, log, nil)
	invoiceUC := usecase.NewInvoiceUseCase(txRunner, cardRepo, operationRepo, invoiceRepo, accountsGW, log, nil)

	// PDF: extracto mensual de la tarjeta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := usecase.NewInvoicePDFUseCase(invoiceRepo, cardRepo, operationRepo, pdfGenerator)

	// Cierre mensual de facturas en segundo plano
	invoiceCloser := worker.NewInvoiceCloser(cardRepo, invoiceUC, log)
	if cfg.Scheduler.Enabled {
		if err := invoiceCloser.Start(cfg.Scheduler.InvoiceCron); err != nil {
			log.Fatal().Err(err).Msg("arranque del scheduler")
		}
		defer invoiceCloser.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CreditCard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CardUC:       cardUC,
		OperationUC:  operationUC,
		InvoiceUC:    invoiceUC,
		InvoicePDFUC: invoicePDFUC,
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
