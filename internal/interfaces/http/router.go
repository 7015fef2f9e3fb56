package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/colis-express/internal/application/auth"
	"github.com/tu-usuario/colis-express/internal/application/billing"
	"github.com/tu-usuario/colis-express/internal/application/parcels"
	"github.com/tu-usuario/colis-express/internal/application/usecase"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	ClientUC       *usecase.ClientUseCase
	RateUC         *usecase.RateUseCase
	ParcelUC       *parcels.UseCase
	IssueInvoiceUC *billing.IssueInvoiceUseCase
	PDFUC          *billing.PDFUseCase
	DisputeUC      *usecase.DisputeUseCase
	NotificationUC *usecase.NotificationUseCase
	DashboardUC    *usecase.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: alta inicial de agencias)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Rates (protegido, solo admin configura tarifas)
	rates := protected.Group("/rates")
	rateHandler := NewRateHandler(deps.RateUC)
	rates.Get("/", rateHandler.List)
	rates.Get("/:id", rateHandler.GetByID)
	rates.Post("/", RequireRole(entity.RoleAdmin), rateHandler.Create)
	rates.Put("/:id", RequireRole(entity.RoleAdmin), rateHandler.Update)
	rates.Delete("/:id", RequireRole(entity.RoleAdmin), rateHandler.Delete)

	// Parcels (protegido)
	parcelsGroup := protected.Group("/parcels")
	parcelHandler := NewParcelHandler(deps.ParcelUC, deps.IssueInvoiceUC, deps.PDFUC)
	parcelsGroup.Post("/", parcelHandler.Create)
	parcelsGroup.Get("/", parcelHandler.List)
	parcelsGroup.Get("/track/:code", parcelHandler.Track)
	parcelsGroup.Get("/:id", parcelHandler.GetByID)
	parcelsGroup.Put("/:id", parcelHandler.Update)
	parcelsGroup.Post("/:id/status", parcelHandler.ChangeStatus)
	parcelsGroup.Get("/:id/quote", parcelHandler.Quote)
	// Facturación: finance o admin
	parcelsGroup.Post("/:id/invoice",
		RequireRole(entity.RoleFinance, entity.RoleAdmin), parcelHandler.IssueInvoice)
	parcelsGroup.Get("/:id/invoice/pdf",
		RequireRole(entity.RoleFinance, entity.RoleAdmin), parcelHandler.DownloadPDF)

	// Disputes (protegido: finance o admin)
	disputes := protected.Group("/disputes", RequireRole(entity.RoleFinance, entity.RoleAdmin))
	disputeHandler := NewDisputeHandler(deps.DisputeUC)
	disputes.Post("/", disputeHandler.Open)
	disputes.Get("/", disputeHandler.List)
	disputes.Post("/:id/resolve", disputeHandler.Resolve)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
