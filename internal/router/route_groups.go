package router

import (
	"canvas_shop_backend/internal/handlers"
	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/models"

	"github.com/gin-gonic/gin"
)

var (
	allStaff      = []models.Role{models.RoleFullAdmin, models.RoleAccountManager, models.RoleProduction}
	catalogEditor = []models.Role{models.RoleFullAdmin, models.RoleAccountManager}
	shippingStaff = []models.Role{models.RoleFullAdmin, models.RoleProduction}
)

// SetupPublicAuthRoutes sets up the login route.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupStorefrontRoutes sets up the public shop routes.
func SetupStorefrontRoutes(group *gin.RouterGroup, h *handlers.StorefrontHandler) {
	group.GET("/paintings", h.GetPaintings)
	group.GET("/paintings/:id", h.GetPainting)
	group.GET("/sizes", h.GetSizes)
	group.GET("/frame-types", h.GetFrameTypes)
	group.GET("/categories", h.GetCategories)
	group.GET("/blog-posts", h.GetBlogPosts)
	group.GET("/hero-slides", h.GetHeroSlides)
	group.GET("/quote", h.Quote)
	group.POST("/orders", h.Checkout)
}

// SetupUserRoutes sets up staff account management. Full admins only.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleFullAdmin))
	{
		userRoutes.GET("", authHandler.ListUsers)
		userRoutes.POST("", authHandler.CreateUser)
		userRoutes.PUT("/:id", authHandler.UpdateUser)
		userRoutes.PUT("/:id/password", authHandler.ResetPassword)
		userRoutes.DELETE("/:id", authHandler.DeleteUser)
	}
}

// SetupOrderRoutes sets up the order routes. Status moves are further limited per role by the order service.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	orderRoutes.Use(middleware.RoleAuthMiddleware(allStaff...))
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.GET("/:id/allowed-statuses", orderHandler.GetAllowedStatuses)
		orderRoutes.PATCH("/:id/status", orderHandler.ChangeStatus)
		orderRoutes.POST("/bulk-status", orderHandler.BulkChangeStatus)

		orderRoutes.GET("/:id/notes/counts", orderHandler.GetNoteCounts)
		orderRoutes.POST("/:id/notes", orderHandler.AddNote)
		orderRoutes.PATCH("/:id/notes/:noteId/read", orderHandler.MarkNoteRead)
		orderRoutes.PATCH("/:id/notes/:noteId/close", orderHandler.CloseNote)
	}

	adminOrderRoutes := authenticatedGroup.Group("/orders")
	adminOrderRoutes.Use(middleware.RoleAuthMiddleware(models.RoleFullAdmin))
	{
		adminOrderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
		adminOrderRoutes.GET("/:id/audit", orderHandler.GetAuditTrail)
	}
}

// SetupShippingRoutes sets up the courier AWB routes of an order.
func SetupShippingRoutes(authenticatedGroup *gin.RouterGroup, shippingHandler *handlers.ShippingHandler) {
	awbRoutes := authenticatedGroup.Group("/orders/:id/awb")
	awbRoutes.Use(middleware.RoleAuthMiddleware(shippingStaff...))
	{
		awbRoutes.POST("", shippingHandler.GenerateAWB)
		awbRoutes.POST("/tracking", shippingHandler.UpdateTracking)
		awbRoutes.GET("/label", shippingHandler.DownloadLabel)
	}
}

func mountCollection[T any](group *gin.RouterGroup, path string, h *handlers.CollectionHandler[T]) {
	routes := group.Group(path)
	{
		routes.GET("", h.List)
		routes.GET("/:id", h.Get)
		routes.POST("", h.Create)
		routes.PUT("/:id", h.Update)
		routes.DELETE("/:id", h.Delete)
	}
}

// SetupCatalogRoutes sets up admin CRUD for catalog and site content.
func SetupCatalogRoutes(authenticatedGroup *gin.RouterGroup, catalog *handlers.CatalogHandlers) {
	catalogRoutes := authenticatedGroup.Group("")
	catalogRoutes.Use(middleware.RoleAuthMiddleware(catalogEditor...))
	mountCollection(catalogRoutes, "/sizes", catalog.Sizes)
	mountCollection(catalogRoutes, "/frame-types", catalog.FrameTypes)
	mountCollection(catalogRoutes, "/paintings", catalog.Paintings)
	mountCollection(catalogRoutes, "/categories", catalog.Categories)
	mountCollection(catalogRoutes, "/subcategories", catalog.Subcategories)
	mountCollection(catalogRoutes, "/blog-posts", catalog.BlogPosts)
	mountCollection(catalogRoutes, "/hero-slides", catalog.HeroSlides)
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.CollectionHandler[models.Client]) {
	clientRoutes := authenticatedGroup.Group("")
	clientRoutes.Use(middleware.RoleAuthMiddleware(catalogEditor...))
	mountCollection(clientRoutes, "/clients", clientHandler)
}

// SetupStockPhotoRoutes sets up the stock-photo picker used when adding paintings.
func SetupStockPhotoRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.StorefrontHandler) {
	photoRoutes := authenticatedGroup.Group("/stock-photos")
	photoRoutes.Use(middleware.RoleAuthMiddleware(catalogEditor...))
	{
		photoRoutes.GET("/search", h.SearchPhotos)
		photoRoutes.GET("/random", h.RandomPhotos)
		photoRoutes.POST("/import", h.ImportStockPhoto)
	}
}

// SetupAdminRoutes sets up maintenance routes of the admin panel.
func SetupAdminRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.StorefrontHandler) {
	adminRoutes := authenticatedGroup.Group("/admin")
	adminRoutes.Use(middleware.RoleAuthMiddleware(allStaff...))
	{
		adminRoutes.POST("/refresh", h.RefreshState)
	}
}

// SetupReportRoutes sets up the dashboard and sales report routes.
func SetupReportRoutes(group *gin.RouterGroup, h *handlers.ReportHandler) {
	reports := group.Group("/reports")
	reports.Use(middleware.RoleAuthMiddleware(catalogEditor...))
	{
		reports.GET("/dashboard", h.GetDashboardSummary)
		reports.GET("/sales", h.GetSalesReports)
	}
}
