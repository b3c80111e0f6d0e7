package main

import (
	"context"
	"log"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/insights"
	"fintrack/internal/domain/metrics"
	"fintrack/internal/domain/report"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/infrastructure/firebase"
	genaiclient "fintrack/internal/infrastructure/genai"
	"fintrack/internal/infrastructure/postgres"
	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/scheduler"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler
	BudgetHandler      *httphandlers.BudgetHandler
	MetricsHandler     *httphandlers.MetricsHandler
	AIHandler          *httphandlers.AIHandler
	ReportHandler      *httphandlers.ReportHandler
	DeviceHandler      *httphandlers.DeviceHandler

	// Auth
	JWT *auth.JWT

	// Scheduler collaborators
	UserRepo  *postgres.UserRepository
	Evaluator *budget.Evaluator
	Messenger scheduler.Messenger
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	reader := postgres.NewLedgerReader(db)

	// Initialize domain services
	transactionSvc := transaction.NewService(transactionRepo, categoryRepo)
	budgetSvc := budget.NewService(budgetRepo, categoryRepo)
	aggregator := metrics.NewAggregator(reader)
	evaluator := budget.NewEvaluator(budgetRepo, aggregator, reader)
	calculator := metrics.NewCalculator(reader)
	dashboard := metrics.NewDashboard(reader)
	reportSvc := report.NewService(reader)

	// The insight engine degrades to deterministic heuristics when no
	// model is configured.
	var generator insights.Generator
	if cfg.GenAI.APIKey != "" {
		client, err := genaiclient.NewClient(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			return nil, err
		}
		generator = client
		log.Printf("GenAI client initialized (model=%s)", cfg.GenAI.Model)
	} else {
		log.Println("GENAI_API_KEY not set, AI insights will use heuristic fallback")
	}
	engine := insights.NewEngine(generator)

	// Initialize FCM messenger for alert digests (optional)
	var messenger scheduler.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, nil)
		if err != nil {
			return nil, err
		}
		messenger = fcm
		log.Println("Firebase messaging client initialized")
	} else {
		log.Println("FIREBASE_CREDENTIALS_FILE not set, alert digests disabled")
	}

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, jwt),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryRepo),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionSvc),
		BudgetHandler:      httphandlers.NewBudgetHandler(budgetSvc, evaluator),
		MetricsHandler:     httphandlers.NewMetricsHandler(calculator, dashboard, evaluator),
		AIHandler:          httphandlers.NewAIHandler(engine, calculator, evaluator, reader),
		ReportHandler:      httphandlers.NewReportHandler(reportSvc),
		DeviceHandler:      httphandlers.NewDeviceHandler(userRepo),
		JWT:                jwt,
		UserRepo:           userRepo,
		Evaluator:          evaluator,
		Messenger:          messenger,
	}, nil
}
