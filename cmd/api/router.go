package api

import (
	"net/http"

	authDelivery "rentit-backend/internal/auth/delivery"
	productDelivery "rentit-backend/internal/product/delivery"
	"rentit-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := authDelivery.NewAuthHandler(h.authUsecase, h.tokens, authDelivery.NewCookieHelper(h.config.Cookie))
	productHandler := productDelivery.NewProductHandler(h.productUsecase, h.config.Upload.MaxImageBytes)
	requireAuth := authDelivery.AuthMiddleware(h.authUsecase)

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/healthcheck", h.healthcheck)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh-token", authHandler.RefreshToken)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/current-user", requireAuth, authHandler.GetCurrentUser)
			auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
		}

		// Product routes; reads are public
		products := api.Group("/products")
		{
			products.GET("/all", productHandler.GetAllProducts)
			products.GET("/get/:id", productHandler.GetProduct)
			products.POST("/create", requireAuth, productHandler.CreateProduct)
			products.GET("/my-products", requireAuth, productHandler.GetMyProducts)
			products.PUT("/update/:id", requireAuth, productHandler.UpdateProduct)
			products.DELETE("/delete/:id", requireAuth, productHandler.DeleteProduct)
			products.PUT("/toggle/:id", requireAuth, productHandler.ToggleProduct)
		}
	}
}

func (h *Handler) healthcheck(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.log.WarnContext(c.Request.Context(), "healthcheck failed", "error", err)
			response.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable"}, "Database unreachable")
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"}, "Server is healthy")
}
