// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/paytrack/backend/config"
	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/application/usecase/advice"
	"github.com/paytrack/backend/internal/application/usecase/analysis"
	"github.com/paytrack/backend/internal/application/usecase/auth"
	"github.com/paytrack/backend/internal/application/usecase/category"
	"github.com/paytrack/backend/internal/application/usecase/payschedule"
	"github.com/paytrack/backend/internal/application/usecase/transaction"
	"github.com/paytrack/backend/internal/infra/server/router"
	"github.com/paytrack/backend/internal/integration/adapters"
	"github.com/paytrack/backend/internal/integration/cache"
	"github.com/paytrack/backend/internal/integration/email"
	"github.com/paytrack/backend/internal/integration/email/templates"
	"github.com/paytrack/backend/internal/integration/entrypoint/controller"
	"github.com/paytrack/backend/internal/integration/entrypoint/middleware"
	"github.com/paytrack/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db and redisClient may be nil; the router's nil guards keep the health
// endpoint available and the analysis runs uncached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create health controller with dependency health checkers
	healthController := controller.NewHealthController(
		func() bool {
			if db == nil {
				return false
			}
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if redisClient == nil {
				return false
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	var (
		authController        *controller.AuthController
		categoryController    *controller.CategoryController
		transactionController *controller.TransactionController
		payScheduleController *controller.PayScheduleController
		analysisController    *controller.AnalysisController
		loginRateLimiter      *middleware.RateLimiter
		authMiddleware        *middleware.AuthMiddleware
		emailWorker           *email.Worker
	)

	if db != nil {
		// Create repositories
		userRepo := persistence.NewUserRepository(db)
		tokenRepo := persistence.NewTokenRepository(db)
		categoryRepo := persistence.NewCategoryRepository(db)
		transactionRepo := persistence.NewTransactionRepository(db)
		payScheduleRepo := persistence.NewPayScheduleRepository(db)
		snapshotRepo := persistence.NewReportSnapshotRepository(db)
		emailQueueRepo := persistence.NewEmailQueueRepository(db)
		analysisRepo := persistence.NewAnalysisRepository(db)

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
		adviceService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey)
		emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

		var reportCache adapter.ReportCache
		if redisClient != nil {
			reportCache = cache.NewReportCache(redisClient, cfg.Analysis.ReportCacheTTL)
		}

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

		// Create category use cases
		listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
		createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, reportCache)
		updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, reportCache)
		deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, reportCache)

		// Create transaction use cases
		listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
		createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, reportCache)
		updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, reportCache)
		deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, reportCache)

		// Create pay schedule use cases
		getPayScheduleUseCase := payschedule.NewGetPayScheduleUseCase(payScheduleRepo)
		upsertPayScheduleUseCase := payschedule.NewUpsertPayScheduleUseCase(payScheduleRepo, reportCache)

		// Create analysis use cases
		runAnalysisUseCase := analysis.NewRunOverspendingAnalysisUseCase(analysisRepo, reportCache)
		generateAdviceUseCase := advice.NewGenerateAdviceUseCase(runAnalysisUseCase, adviceService)
		queueDigestUseCase := analysis.NewQueueDigestUseCase(runAnalysisUseCase, userRepo, snapshotRepo, emailService)
		listHistoryUseCase := analysis.NewListHistoryUseCase(snapshotRepo)

		// Create controllers
		authController = controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		)

		categoryController = controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		)

		transactionController = controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
		)

		payScheduleController = controller.NewPayScheduleController(
			getPayScheduleUseCase,
			upsertPayScheduleUseCase,
		)

		analysisController = controller.NewAnalysisController(
			runAnalysisUseCase,
			generateAdviceUseCase,
			queueDigestUseCase,
			listHistoryUseCase,
		)

		// Create middleware
		// Use higher rate limits for E2E/test environments to prevent flaky tests
		if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
			loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
		} else {
			loginRateLimiter = middleware.NewRateLimiter()
		}
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		// Create email worker when sending is configured
		if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
			renderer, err := templates.NewRenderer()
			if err != nil {
				return nil, fmt.Errorf("failed to create template renderer: %w", err)
			}
			sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			emailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
			})
		}
	}

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		payScheduleController,
		analysisController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}
