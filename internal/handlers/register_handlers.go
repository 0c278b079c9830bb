package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sunyield/sunyield_backend/cmd/docs"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/middleware"
	"github.com/sunyield/sunyield_backend/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Gateway settlements arrive unauthenticated on the webhook path.
	registerPaymentWebhookRoutes(r, services.Subscription)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerWalletRoutes(v1, services.Wallet, services.Engagement)
	registerProjectRoutes(v1, services.Project)
	registerSubscriptionRoutes(v1, services.Subscription, services.Payment)
	registerWithdrawalRoutes(v1, services.Withdrawal)
	registerRewardRoutes(v1, services.Reward)
	registerKYCRoutes(v1, services.KYC)
	registerCouponRoutes(v1, services.Coupon)

	// Admin-only surface
	admin := v1.Group("/admin", middleware.AdminRequired(services.User))
	registerAdminRoutes(admin, services)
}

func registerAdminRoutes(admin *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerAdminWalletRoutes(admin, services.Wallet)
	registerAdminProjectRoutes(admin, services.Project)
	registerAdminRewardRoutes(admin, services.Reward)
	registerAdminWithdrawalRoutes(admin, services.Withdrawal)
	registerAdminKYCRoutes(admin, services.KYC)
	registerAdminCouponRoutes(admin, services.Coupon)
	registerAdminConfigRoutes(admin, services.Config)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
