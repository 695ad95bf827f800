package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Artwork endpoints (public read access)
		v1.GET("/artworks/:id", handler.GetArtwork)

		// Artwork registration and rights management (requires authentication)
		v1.POST("/artworks", middleware.Auth(authCfg), handler.CreateArtwork)
		v1.POST("/artworks/:id/licenses", middleware.Auth(authCfg), handler.MintLicense)
		v1.POST("/artworks/:id/copyright/transfer", middleware.Auth(authCfg), handler.TransferCopyright)

		// Token endpoints (public read access)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/tokens/:id/history", handler.GetTokenHistory)

		// Token transfer (requires authentication)
		v1.POST("/tokens/:id/transfer", middleware.Auth(authCfg), handler.TransferToken)

		// Listing endpoints (public read access)
		v1.GET("/listings", handler.GetListings)
		v1.GET("/tokens/:id/listing", handler.GetListing)

		// Listing management (requires authentication)
		v1.POST("/tokens/:id/listing", middleware.Auth(authCfg), handler.CreateListing)
		v1.DELETE("/tokens/:id/listing", middleware.Auth(authCfg), handler.CancelListing)

		// Offer endpoints (public read access)
		v1.GET("/tokens/:id/offers", handler.GetOffers)

		// Offer management (requires authentication)
		v1.POST("/tokens/:id/offers", middleware.Auth(authCfg), handler.MakeOffer)
		v1.POST("/tokens/:id/offers/:index/accept", middleware.Auth(authCfg), handler.AcceptOffer)
		v1.POST("/tokens/:id/offers/:index/reject", middleware.Auth(authCfg), handler.RejectOffer)
		v1.POST("/tokens/:id/offers/:index/withdraw", middleware.Auth(authCfg), handler.WithdrawOffer)

		// Refund withdrawal (requires authentication)
		v1.POST("/withdrawals", middleware.Auth(authCfg), handler.Withdraw)

		// Account endpoints (public read access)
		v1.GET("/accounts/:account/tokens", handler.GetAccountTokens)
		v1.GET("/accounts/:account/balance", handler.GetAccountBalance)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
		v1.GET("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.ListWebhookClients)
		v1.DELETE("/webhooks/clients/:client_id", middleware.APIKeyAuth(authCfg), handler.DeactivateWebhookClient)

		// Administrative endpoints (requires admin API key)
		v1.POST("/admin/suspensions", middleware.AdminAuth(authCfg), handler.SuspendAccount)
		v1.DELETE("/admin/suspensions/:account", middleware.AdminAuth(authCfg), handler.LiftSuspension)
	}
}
