package main

import (
	"github.com/gin-gonic/gin"

	"coin-desk.backend/internal/interfaces/http/handlers"
	"coin-desk.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	walletHandler     *handlers.WalletHandler
	tradeHandler      *handlers.TradeHandler
	withdrawalHandler *handlers.WithdrawalHandler
	adminHandler      *handlers.AdminHandler
	marketHandler     *handlers.MarketHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetProfile)
			auth.PUT("/me", d.authMiddleware, d.authHandler.UpdateProfile)
			auth.PUT("/password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Market routes (public)
		market := v1.Group("/market")
		{
			market.GET("/quotes", d.marketHandler.ListQuotes)
			market.GET("/quotes/:symbol", d.marketHandler.GetQuote)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("/balance", d.walletHandler.GetBalance)
			wallet.GET("/transactions", d.walletHandler.ListTransactions)
			wallet.GET("/deposit-address", d.walletHandler.GetDepositAddress)
			wallet.POST("/deposits", middleware.IdempotencyMiddleware(), d.walletHandler.RequestDeposit)
		}

		// Trading routes (protected)
		trades := v1.Group("/trades")
		trades.Use(d.authMiddleware)
		{
			trades.POST("", middleware.IdempotencyMiddleware(), d.tradeHandler.OpenTrade)
			trades.POST("/:id/close", d.tradeHandler.CloseTrade)
			trades.GET("", d.tradeHandler.ListTrades)
		}

		// Withdrawal routes (protected)
		withdrawals := v1.Group("/withdrawals")
		withdrawals.Use(d.authMiddleware)
		{
			withdrawals.POST("", d.withdrawalHandler.RequestWithdrawal)
			withdrawals.POST("/confirm", middleware.IdempotencyMiddleware(), d.withdrawalHandler.ConfirmWithdrawal)
			withdrawals.POST("/resend-code", d.withdrawalHandler.ResendCode)
		}

		// Transfer routes (protected)
		transfers := v1.Group("/transfers")
		transfers.Use(d.authMiddleware)
		{
			transfers.POST("", middleware.IdempotencyMiddleware(), d.withdrawalHandler.Transfer)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/active", d.adminHandler.SetUserActive)
			admin.PUT("/users/:id/level", d.adminHandler.SetUserLevel)
			admin.GET("/deposits/pending", d.adminHandler.PendingDeposits)
			admin.GET("/wallets", d.adminHandler.ListWallets)
			admin.PUT("/wallets/:method", d.adminHandler.SetWallet)
			admin.PUT("/deposits/:id/review", d.adminHandler.ReviewDeposit)
			admin.GET("/stats", d.adminHandler.Stats)
		}
	}
}
