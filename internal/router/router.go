package router

import (
	"net/http"

	"canvas_shop_backend/internal/handlers"
	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Orders     *handlers.OrderHandler
	Shipping   *handlers.ShippingHandler
	Storefront *handlers.StorefrontHandler
	Catalog    *handlers.CatalogHandlers
	Clients    *handlers.CollectionHandler[models.Client]
	Reports    *handlers.ReportHandler
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, h Handlers, tokens *utils.TokenManager) {
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), h.Auth)
	SetupStorefrontRoutes(apiV1.Group("/shop"), h.Storefront)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), h.Auth)
		SetupUserRoutes(authenticated, h.Auth)
		SetupOrderRoutes(authenticated, h.Orders)
		SetupShippingRoutes(authenticated, h.Shipping)
		SetupCatalogRoutes(authenticated, h.Catalog)
		SetupClientRoutes(authenticated, h.Clients)
		SetupStockPhotoRoutes(authenticated, h.Storefront)
		SetupAdminRoutes(authenticated, h.Storefront)
		SetupReportRoutes(authenticated, h.Reports)
	}
}
