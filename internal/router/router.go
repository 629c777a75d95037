package router

import (
	"database/sql"
	"net/http"

	"snack_factory_backend/internal/handlers"
	"snack_factory_backend/internal/metrics"
	"snack_factory_backend/internal/middleware"
	"snack_factory_backend/internal/repositories"
	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Options carries everything Setup needs beyond the database handle.
type Options struct {
	Tokens             *utils.TokenManager
	Metrics            *metrics.Metrics
	CORSAllowedOrigins []string
	LowStockThreshold  int
	ServiceName        string
}

// Setup installs middleware and every application route on engine.
func Setup(engine *gin.Engine, db *sql.DB, opts Options) {
	handlers.RegisterValidators()

	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))
	if opts.ServiceName != "" {
		engine.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Metrics != nil {
		engine.Use(opts.Metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// Initialize Repositories
	authRepo := repositories.NewAuthRepository()
	materialRepo := repositories.NewMaterialRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	movementRepo := repositories.NewStockMovementRepository()
	productionRepo := repositories.NewProductionRepository()
	orderRepo := repositories.NewOrderRepository()
	customerOrderRepo := repositories.NewCustomerOrderRepository()
	snackRepo := repositories.NewSnackRepository()
	feedbackRepo := repositories.NewFeedbackRepository()
	dashboardRepo := repositories.NewDashboardRepository()
	txm := repositories.NewTxManager(db)

	// Initialize Services
	var recorder services.LedgerRecorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	ledger := services.NewStockLedger(inventoryRepo, materialRepo, movementRepo, recorder)

	authService := services.NewAuthService(authRepo, db, opts.Tokens)
	materialService := services.NewMaterialService(materialRepo, ledger, txm, db)
	inventoryService := services.NewInventoryService(inventoryRepo, movementRepo, ledger, txm, db)
	productionService := services.NewProductionService(productionRepo, ledger, txm, db)
	orderService := services.NewOrderService(orderRepo, ledger, txm, db)
	customerOrderService := services.NewCustomerOrderService(customerOrderRepo, db)
	snackService := services.NewSnackService(snackRepo, db)
	feedbackService := services.NewFeedbackService(feedbackRepo, authRepo, db)
	dashboardService := services.NewDashboardService(dashboardRepo, db, opts.LowStockThreshold)

	// Initialize Handlers
	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}
	h := Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Material:      handlers.NewMaterialHandler(materialService),
		Inventory:     handlers.NewInventoryHandler(inventoryService),
		Production:    handlers.NewProductionHandler(productionService),
		Order:         handlers.NewOrderHandler(orderService),
		CustomerOrder: handlers.NewCustomerOrderHandler(customerOrderService),
		Snack:         handlers.NewSnackHandler(snackService),
		Feedback:      handlers.NewFeedbackHandler(feedbackService),
		Report:        handlers.NewReportHandler(dashboardService, pinger),
	}

	api := engine.Group("/api")
	authRequired := middleware.AuthMiddleware(opts.Tokens)
	adminRequired := middleware.RequireAdmin(authService)

	SetupHealthRoutes(api, h.Report)
	SetupAuthRoutes(api, h.Auth, authRequired)
	SetupMaterialRoutes(api, h.Material)
	SetupInventoryRoutes(api, h.Inventory)
	SetupProductionRoutes(api, h.Production)
	SetupOrderRoutes(api, h.Order)
	SetupSnackRoutes(api, h.Snack)
	SetupCustomerOrderRoutes(api, h.CustomerOrder, authRequired)
	SetupFeedbackRoutes(api, h.Feedback, authRequired, adminRequired)
	SetupDashboardRoutes(api, h.Report)

	engine.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Route not found", c.Request.URL.Path))
	})
}

// Handlers groups the per-resource handlers the route groups bind to.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Material      *handlers.MaterialHandler
	Inventory     *handlers.InventoryHandler
	Production    *handlers.ProductionHandler
	Order         *handlers.OrderHandler
	CustomerOrder *handlers.CustomerOrderHandler
	Snack         *handlers.SnackHandler
	Feedback      *handlers.FeedbackHandler
	Report        *handlers.ReportHandler
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	config.AllowOrigins = origins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	return config
}
