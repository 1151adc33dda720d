package handler

import (
	"wallet-ledger/internal/adapter/http/middleware"
	redisStore "wallet-ledger/internal/adapter/storage/redis"
	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	TransactionSvc ports.TransactionService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Deep health check verifying PostgreSQL and Redis
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.TransactionSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.GET("", rl("reads"), walletHandler.List)
		wallets.POST("", rl("writes"), walletHandler.Create)
		wallets.GET("/:id", rl("reads"), walletHandler.Get)
		wallets.PUT("/:id", rl("writes"), walletHandler.Update)
		wallets.PATCH("/:id", rl("writes"), walletHandler.Update)
		wallets.DELETE("/:id", rl("writes"), walletHandler.Delete)
		wallets.GET("/:id/transactions", rl("reads"), walletHandler.ListTransactions)
	}

	transactionHandler := NewTransactionHandler(deps.TransactionSvc)
	transactions := v1.Group("/transactions")
	{
		transactions.GET("", rl("reads"), transactionHandler.List)
		transactions.POST("", rl("transactions_create"), transactionHandler.Create)
		transactions.GET("/:id", rl("reads"), transactionHandler.Get)
		transactions.PUT("/:id", transactionHandler.UpdateNotAllowed)
		transactions.PATCH("/:id", transactionHandler.UpdateNotAllowed)
		transactions.DELETE("/:id", transactionHandler.DeleteNotAllowed)
	}

	return r
}
