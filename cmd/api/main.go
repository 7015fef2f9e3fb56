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
	"github.com/tu-usuario/colis-express/internal/application/auth"
	"github.com/tu-usuario/colis-express/internal/application/billing"
	"github.com/tu-usuario/colis-express/internal/application/parcels"
	"github.com/tu-usuario/colis-express/internal/application/usecase"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	infrapdf "github.com/tu-usuario/colis-express/internal/infrastructure/pdf"
	"github.com/tu-usuario/colis-express/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/colis-express/internal/interfaces/http"
	"github.com/tu-usuario/colis-express/pkg/config"
	"github.com/tu-usuario/colis-express/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	ruleRepo := postgres.NewPricingRuleRepository(pool)
	parcelRepo := postgres.NewParcelRepository(pool)
	disputeRepo := postgres.NewDisputeRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de tarifas: país normalizado + tipo de envío → precio unitario.
	resolver := pricing.NewResolver(ruleRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	rateUC := usecase.NewRateUseCase(ruleRepo)
	parcelUC := parcels.NewUseCase(parcelRepo, clientRepo, txRunner, resolver)
	disputeUC := usecase.NewDisputeUseCase(parcelRepo, disputeRepo, txRunner)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)

	issueInvoiceUC := billing.NewIssueInvoiceUseCase(
		parcelRepo, notifRepo, resolver,
		billing.Config{InvoicePrefix: cfg.Billing.InvoicePrefix},
		log,
	)

	// PDF: representación imprimible de la factura, con QR de seguimiento
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Billing.TrackingBase)
	invoicePDFUC := billing.NewPDFUseCase(parcelRepo, companyRepo, clientRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Colis Express API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		ClientUC:       clientUC,
		RateUC:         rateUC,
		ParcelUC:       parcelUC,
		IssueInvoiceUC: issueInvoiceUC,
		PDFUC:          invoicePDFUC,
		DisputeUC:      disputeUC,
		NotificationUC: notificationUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
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
