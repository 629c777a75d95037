package router

import (
	"snack_factory_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes sets up the liveness probe.
func SetupHealthRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	apiGroup.GET("/health", reportHandler.Health)
}

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, authRequired gin.HandlerFunc) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", authRequired, authHandler.Me)
	}
}

// SetupMaterialRoutes sets up the raw material routes.
func SetupMaterialRoutes(apiGroup *gin.RouterGroup, materialHandler *handlers.MaterialHandler) {
	materialRoutes := apiGroup.Group("/materials")
	{
		materialRoutes.POST("", materialHandler.CreateMaterial)
		materialRoutes.GET("", materialHandler.GetMaterials)
		materialRoutes.POST("/reduce-quantity", materialHandler.ReduceQuantity)
		materialRoutes.GET("/:id", materialHandler.GetMaterialByID)
		materialRoutes.PUT("/:id", materialHandler.UpdateMaterial)
		materialRoutes.DELETE("/:id", materialHandler.DeleteMaterial)
	}
}

// SetupInventoryRoutes sets up the finished-goods inventory routes.
func SetupInventoryRoutes(apiGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := apiGroup.Group("/inventory")
	{
		inventoryRoutes.POST("", inventoryHandler.CreateItem)
		inventoryRoutes.GET("", inventoryHandler.GetItems)
		inventoryRoutes.GET("/movements", inventoryHandler.GetMovements)
		inventoryRoutes.POST("/update-stock", inventoryHandler.UpdateStock)
		inventoryRoutes.POST("/reduce-stock", inventoryHandler.ReduceStock)
		inventoryRoutes.GET("/:id", inventoryHandler.GetItemByID)
		inventoryRoutes.PUT("/:id", inventoryHandler.UpdateItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
	}
}

// SetupProductionRoutes sets up the production record routes.
func SetupProductionRoutes(apiGroup *gin.RouterGroup, productionHandler *handlers.ProductionHandler) {
	productionRoutes := apiGroup.Group("/production")
	{
		productionRoutes.POST("", productionHandler.CreateProduction)
		productionRoutes.GET("", productionHandler.GetProductions)
		productionRoutes.GET("/:id", productionHandler.GetProductionByID)
		productionRoutes.PUT("/:id", productionHandler.UpdateProduction)
		productionRoutes.DELETE("/:id", productionHandler.DeleteProduction)
	}
}

// SetupOrderRoutes sets up the dispatch order routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/status/:status", orderHandler.GetOrdersByStatus)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupSnackRoutes sets up the catalog routes.
func SetupSnackRoutes(apiGroup *gin.RouterGroup, snackHandler *handlers.SnackHandler) {
	snackRoutes := apiGroup.Group("/snacks")
	{
		snackRoutes.POST("", snackHandler.CreateSnack)
		snackRoutes.GET("", snackHandler.GetSnacks)
		snackRoutes.GET("/:id", snackHandler.GetSnackByID)
		snackRoutes.PUT("/:id", snackHandler.UpdateSnack)
		snackRoutes.DELETE("/:id", snackHandler.DeleteSnack)
	}
}

// SetupCustomerOrderRoutes sets up the storefront order routes.
func SetupCustomerOrderRoutes(apiGroup *gin.RouterGroup, customerOrderHandler *handlers.CustomerOrderHandler, authRequired gin.HandlerFunc) {
	customerOrderRoutes := apiGroup.Group("/customer-orders")
	{
		customerOrderRoutes.POST("", authRequired, customerOrderHandler.PlaceOrder)
		customerOrderRoutes.GET("", customerOrderHandler.GetAll)
		customerOrderRoutes.GET("/history/my-orders", authRequired, customerOrderHandler.MyOrders)
		customerOrderRoutes.GET("/:id", customerOrderHandler.GetByID)
		customerOrderRoutes.PUT("/:id", customerOrderHandler.UpdateStatus)
		customerOrderRoutes.DELETE("/:id", customerOrderHandler.Delete)
	}
}

// SetupFeedbackRoutes sets up the feedback routes. Every route needs a bearer token; moderation needs admin.
func SetupFeedbackRoutes(apiGroup *gin.RouterGroup, feedbackHandler *handlers.FeedbackHandler, authRequired, adminRequired gin.HandlerFunc) {
	feedbackRoutes := apiGroup.Group("/feedback")
	feedbackRoutes.Use(authRequired)
	{
		feedbackRoutes.POST("", feedbackHandler.Create)
		feedbackRoutes.GET("/user/my-feedback", feedbackHandler.MyFeedback)
		feedbackRoutes.GET("/:id", feedbackHandler.GetByID)

		adminRoutes := feedbackRoutes.Group("")
		adminRoutes.Use(adminRequired)
		{
			adminRoutes.GET("", feedbackHandler.GetAll)
			adminRoutes.GET("/stats/overview", feedbackHandler.Stats)
			adminRoutes.PUT("/:id/status", feedbackHandler.UpdateStatus)
			adminRoutes.DELETE("/:id", feedbackHandler.Delete)
		}
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	apiGroup.GET("/dashboard/summary", reportHandler.GetDashboardSummary)
}
