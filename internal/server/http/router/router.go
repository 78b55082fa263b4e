package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/server/http/handlers"
	"github.com/polkiloo/refmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.SettlementFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	salespersonHandler := handlers.NewSalespersonHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/salesperson/register", authHandler.RegisterSalesperson)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.List)

	salesperson := api.Group("/salesperson")
	salesperson.Use(middleware.AuthRequired(facade))
	salesperson.Use(middleware.RequireRole(model.RoleSalesperson))
	salesperson.GET("/balance", salespersonHandler.Balance)
	salesperson.GET("/ledger", salespersonHandler.Ledger)
	salesperson.POST("/payouts", salespersonHandler.RequestPayout)
	salesperson.GET("/payouts", salespersonHandler.Payouts)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/orders/:id/verify", adminHandler.VerifyOrder)
	admin.GET("/payouts", adminHandler.PendingPayouts)
	admin.POST("/payouts/resolve", adminHandler.ResolvePayoutBatch)
	admin.POST("/payouts/:id/resolve", adminHandler.ResolvePayout)
	admin.POST("/payouts/:id/settle", adminHandler.SettlePayout)
	admin.POST("/ledger", adminHandler.ManualEntry)
	admin.POST("/ledger/:id/review", adminHandler.ReviewEntry)
	admin.POST("/products", adminHandler.CreateProduct)

	return engine
}
