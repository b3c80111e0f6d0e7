package main

import (
	"log"
	"net/http"

	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("POST /api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protect := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("GET /api/users/me", protect(deps.AuthHandler.HandleMe))

	mux.Handle("GET /api/categories", protect(deps.CategoryHandler.HandleList))
	mux.Handle("POST /api/categories", protect(deps.CategoryHandler.HandleCreate))
	mux.Handle("GET /api/categories/{id}", protect(deps.CategoryHandler.HandleGet))
	mux.Handle("PUT /api/categories/{id}", protect(deps.CategoryHandler.HandleUpdate))
	mux.Handle("DELETE /api/categories/{id}", protect(deps.CategoryHandler.HandleDelete))

	mux.Handle("GET /api/transactions", protect(deps.TransactionHandler.HandleList))
	mux.Handle("POST /api/transactions", protect(deps.TransactionHandler.HandleCreate))
	mux.Handle("GET /api/transactions/{id}", protect(deps.TransactionHandler.HandleGet))
	mux.Handle("PUT /api/transactions/{id}", protect(deps.TransactionHandler.HandleUpdate))
	mux.Handle("DELETE /api/transactions/{id}", protect(deps.TransactionHandler.HandleDelete))

	mux.Handle("GET /api/budgets", protect(deps.BudgetHandler.HandleList))
	mux.Handle("POST /api/budgets", protect(deps.BudgetHandler.HandleCreate))
	mux.Handle("GET /api/budgets/alerts", protect(deps.BudgetHandler.HandleAlerts))
	mux.Handle("GET /api/budgets/performance", protect(deps.BudgetHandler.HandlePerformance))
	mux.Handle("GET /api/budgets/overview", protect(deps.BudgetHandler.HandleOverview))
	mux.Handle("GET /api/budgets/analytics", protect(deps.BudgetHandler.HandleAnalytics))
	mux.Handle("GET /api/budgets/{id}", protect(deps.BudgetHandler.HandleGet))
	mux.Handle("PUT /api/budgets/{id}", protect(deps.BudgetHandler.HandleUpdate))
	mux.Handle("DELETE /api/budgets/{id}", protect(deps.BudgetHandler.HandleDelete))

	mux.Handle("GET /api/metrics/summary", protect(deps.MetricsHandler.HandleSummary))
	mux.Handle("GET /api/metrics/monthly-chart", protect(deps.MetricsHandler.HandleMonthlyChart))
	mux.Handle("GET /api/metrics/category-chart", protect(deps.MetricsHandler.HandleCategoryChart))
	mux.Handle("GET /api/metrics/recent-transactions", protect(deps.MetricsHandler.HandleRecentTransactions))
	mux.Handle("GET /api/metrics/budget-overview", protect(deps.MetricsHandler.HandleBudgetOverview))
	mux.Handle("GET /api/metrics/complete", protect(deps.MetricsHandler.HandleComplete))

	mux.Handle("GET /api/ai/insights", protect(deps.AIHandler.HandleInsights))
	mux.Handle("GET /api/ai/predictions", protect(deps.AIHandler.HandlePredictions))
	mux.Handle("GET /api/ai/forecast", protect(deps.AIHandler.HandleForecast))
	mux.Handle("GET /api/ai/risk", protect(deps.AIHandler.HandleRisk))
	mux.Handle("GET /api/ai/trends", protect(deps.AIHandler.HandleTrends))
	mux.Handle("GET /api/ai/recommendations", protect(deps.AIHandler.HandleRecommendations))

	mux.Handle("GET /api/reports/custom", protect(deps.ReportHandler.HandleCustom))
	mux.Handle("GET /api/reports/weekly", protect(deps.ReportHandler.HandleWeekly))
	mux.Handle("GET /api/reports/monthly", protect(deps.ReportHandler.HandleMonthly))
	mux.Handle("GET /api/reports/generate/pdf", protect(deps.ReportHandler.HandlePDF))

	mux.Handle("POST /api/notifications/register-device", protect(deps.DeviceHandler.HandleRegisterDevice))
	mux.Handle("DELETE /api/notifications/register-device", protect(deps.DeviceHandler.HandleUnregisterDevice))

	// Apply global middleware
	handler := middleware.RequestID(middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux)))
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
