package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/votemart/votemart/internal/server/http/handlers"
	"github.com/votemart/votemart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade, facade)
	accountHandler := handlers.NewAccountHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/orders", orderHandler.List)
	userAuth.POST("/orders/upvotes", orderHandler.SubmitUpvotes)
	userAuth.POST("/orders/comments", orderHandler.SubmitComment)
	userAuth.POST("/orders/refresh", orderHandler.RefreshAll)
	userAuth.POST("/orders/:id/refresh", orderHandler.Refresh)
	userAuth.POST("/orders/:id/cancel", orderHandler.Cancel)
	userAuth.GET("/balance", balanceHandler.Summary)
	userAuth.POST("/deposits/card", balanceHandler.DepositCard)
	userAuth.POST("/deposits/crypto", balanceHandler.DepositCrypto)
	userAuth.GET("/deposits", balanceHandler.Deposits)
	userAuth.GET("/accounts", accountHandler.List)
	userAuth.POST("/accounts/:id/purchase", accountHandler.Purchase)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired(facade))
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/:id/status", adminHandler.SetStatus)
	admin.POST("/orders/:id/refund", adminHandler.Refund)
	admin.POST("/balance/credit", adminHandler.Credit)
	admin.GET("/accounts", adminHandler.Accounts)
	admin.POST("/accounts", adminHandler.CreateAccount)

	return engine
}
