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
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/rmacedo/caixa-api/internal/application/analytics"
	"github.com/rmacedo/caixa-api/internal/application/audit"
	"github.com/rmacedo/caixa-api/internal/application/auth"
	appbilling "github.com/rmacedo/caixa-api/internal/application/billing"
	"github.com/rmacedo/caixa-api/internal/application/cashbox"
	"github.com/rmacedo/caixa-api/internal/application/usecase"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
	infrapdf "github.com/rmacedo/caixa-api/internal/infrastructure/pdf"
	"github.com/rmacedo/caixa-api/internal/infrastructure/postgres"
	httpRouter "github.com/rmacedo/caixa-api/internal/interfaces/http"
	"github.com/rmacedo/caixa-api/pkg/config"
	"github.com/rmacedo/caixa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	loc := cfg.App.Location()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	logRepo := postgres.NewActivityLogRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Conta admin de bootstrap: sem ela ninguém entra num banco recém-criado.
	if err := ensureAdmin(userRepo); err != nil {
		log.Fatal().Err(err).Msg("bootstrap do usuário admin")
	}

	auditUC := audit.NewUseCase(logRepo, loc)
	authUC := auth.NewAuthUseCase(userRepo, auditUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, auditUC)
	clientUC := usecase.NewClientUseCase(clientRepo, billRepo, auditUC)
	productUC := usecase.NewProductUseCase(productRepo, billRepo, auditUC)
	cashboxUC := cashbox.NewUseCase(txnRepo, productRepo, clientRepo, txRunner, auditUC, loc)
	carneGen := infrapdf.NewCarneGenerator()
	billingUC := appbilling.NewUseCase(billRepo, clientRepo, productRepo, txRunner, carneGen, loc)
	dashboardUC := appanalytics.NewDashboardUseCase(statsRepo, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ClientUC:    clientUC,
		ProductUC:   productUC,
		CashboxUC:   cashboxUC,
		BillingUC:   billingUC,
		DashboardUC: dashboardUC,
		AuditUC:     auditUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

// ensureAdmin cria a conta admin padrão se ela ainda não existir. A senha
// inicial deve ser trocada no primeiro acesso (require_password_change).
func ensureAdmin(userRepo repository.UserRepository) error {
	existing, err := userRepo.GetByUsername(entity.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return userRepo.Create(&entity.User{
		ID:                    uuid.New().String(),
		Username:              entity.AdminUsername,
		Email:                 "admin@localhost",
		PasswordHash:          string(hash),
		Role:                  entity.RoleAdmin,
		Permissions:           []string{},
		Active:                true,
		RequirePasswordChange: true,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
}
