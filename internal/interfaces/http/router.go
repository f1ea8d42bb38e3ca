package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/caixa-api/internal/application/analytics"
	"github.com/rmacedo/caixa-api/internal/application/audit"
	"github.com/rmacedo/caixa-api/internal/application/auth"
	"github.com/rmacedo/caixa-api/internal/application/billing"
	"github.com/rmacedo/caixa-api/internal/application/cashbox"
	"github.com/rmacedo/caixa-api/internal/application/usecase"
	"github.com/rmacedo/caixa-api/internal/domain/permission"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ClientUC    *usecase.ClientUseCase
	ProductUC   *usecase.ProductUseCase
	CashboxUC   *cashbox.UseCase
	BillingUC   *billing.UseCase
	DashboardUC *analytics.DashboardUseCase
	AuditUC     *audit.UseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Conta do próprio usuário
	protected.Get("/me", authHandler.Me)
	protected.Post("/me/password", authHandler.ChangePassword)

	// Usuários (admin e gerentes)
	users := protected.Group("/users", RequireCapability(permission.ManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/permissions", userHandler.UpdatePermissions)
	users.Delete("/:id", userHandler.Delete)

	// Clientes
	clients := protected.Group("/clients", RequireAnyCapability(permission.ManageClients, permission.RegisterSales, permission.CashOperations))
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clientsWrite := protected.Group("/clients", RequireCapability(permission.ManageClients))
	clientsWrite.Post("/", clientHandler.Create)
	clientsWrite.Put("/:id", clientHandler.Update)
	clientsWrite.Delete("/:id", clientHandler.Delete)

	// Produtos (leitura liberada para quem vende ou opera o caixa)
	products := protected.Group("/products", RequireAnyCapability(permission.ManageProducts, permission.RegisterSales, permission.CashOperations))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	productsWrite := protected.Group("/products", RequireCapability(permission.ManageProducts))
	productsWrite.Post("/", productHandler.Create)
	productsWrite.Put("/:id", productHandler.Update)
	productsWrite.Delete("/:id", productHandler.Delete)

	// Movimentações de caixa. Registrar entrada/saída é operação de caixa;
	// a listagem também atende vendedores (restrita às próprias no caso de uso).
	transactionHandler := NewTransactionHandler(deps.CashboxUC)
	protected.Post("/transactions", RequireCapability(permission.CashOperations), transactionHandler.Create)
	protected.Get("/transactions", RequireAnyCapability(permission.CashOperations, permission.RegisterSales), transactionHandler.List)

	// Vendas e relatórios individuais
	protected.Post("/sales", RequireCapability(permission.RegisterSales), transactionHandler.CreateSale)
	protected.Get("/my-reports", RequireCapability(permission.RegisterSales), transactionHandler.MyReports)

	// Cobranças parceladas. As rotas de parcela vêm antes de /bills/:id para
	// que "pending" não seja capturado como id.
	billHandler := NewBillHandler(deps.BillingUC)
	protected.Get("/bills/pending",
		RequireAnyCapability(permission.ManageBills, permission.CashOperations), billHandler.ListPending)
	protected.Post("/bills/installments/:id/pay",
		RequireAnyCapability(permission.ManageBills, permission.CashOperations), billHandler.PayInstallment)

	bills := protected.Group("/bills", RequireAnyCapability(permission.ManageBills, permission.RegisterSales))
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Get("/:id/carne", billHandler.Carne)

	// Dashboard financeiro
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", RequireCapability(permission.ViewPerformance), dashboardHandler.Summary)

	// Trilha de auditoria
	activityHandler := NewActivityHandler(deps.AuditUC)
	protected.Get("/activity-logs", RequireCapability(permission.ViewActivityLogs), activityHandler.List)
}
