package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biztrack/internal/ai"
	"biztrack/internal/auth"
	"biztrack/internal/core"
	"biztrack/internal/report"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	ledger   core.LedgerService
	catalog  core.CatalogService
	expenses core.ExpenseService
	contacts core.ContactService
	settings core.SettingsService
	metrics  core.MetricsService
	users    core.UserService
	export   report.ExportService
	advisor  ai.AdvisorService
	tokens   *auth.TokenService
	logger   *zap.Logger
}

// Services bundles the dependencies needed by NewRouter.
type Services struct {
	Ledger   core.LedgerService
	Catalog  core.CatalogService
	Expenses core.ExpenseService
	Contacts core.ContactService
	Settings core.SettingsService
	Metrics  core.MetricsService
	Users    core.UserService
	Export   report.ExportService
	Advisor  ai.AdvisorService
	Tokens   *auth.TokenService
	Logger   *zap.Logger
}

// NewRouter wires all routes onto a gin engine.
func NewRouter(svcs Services, allowedOrigins []string) *gin.Engine {
	h := &Handler{
		ledger:   svcs.Ledger,
		catalog:  svcs.Catalog,
		expenses: svcs.Expenses,
		contacts: svcs.Contacts,
		settings: svcs.Settings,
		metrics:  svcs.Metrics,
		users:    svcs.Users,
		export:   svcs.Export,
		advisor:  svcs.Advisor,
		tokens:   svcs.Tokens,
		logger:   svcs.Logger,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "online"})
	})
	r.POST("/login", h.login)

	api := r.Group("/api")
	api.Use(AuthMiddleware(h.tokens))
	{
		api.GET("/products", h.listProducts)
		api.POST("/products", h.createProduct)
		api.GET("/products/:id", h.getProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.GET("/sales", h.listSales)
		api.POST("/sales", h.createSale)
		api.PUT("/sales/:id", h.updateSale)
		api.DELETE("/sales/:id", h.deleteSale)
		api.POST("/sales/:id/refund", h.refundSale)

		api.GET("/expenses", h.listExpenses)
		api.POST("/expenses", h.createExpense)
		api.PUT("/expenses/:id", h.updateExpense)
		api.DELETE("/expenses/:id", h.deleteExpense)

		api.GET("/contacts", h.listContacts)
		api.POST("/contacts/suppliers", h.createSupplier)
		api.PUT("/contacts/suppliers/:id", h.updateSupplier)
		api.DELETE("/contacts/suppliers/:id", h.deleteSupplier)
		api.POST("/contacts/customers", h.createCustomer)
		api.PUT("/contacts/customers/:id", h.updateCustomer)
		api.DELETE("/contacts/customers/:id", h.deleteCustomer)

		api.GET("/settings", h.getSettings)
		api.PUT("/settings", h.updateSettings)
		api.POST("/settings/platforms", h.addPlatform)
		api.DELETE("/settings/platforms/:id", h.removePlatform)
		api.GET("/settings/sku-prefixes", h.listSkuPrefixes)
		api.POST("/settings/sku-prefixes", h.addSkuPrefix)
		api.DELETE("/settings/sku-prefixes/:id", h.removeSkuPrefix)
		api.GET("/settings/delivery-charges", h.listDeliveryCharges)
		api.POST("/settings/delivery-charges", h.addDeliveryCharge)
		api.DELETE("/settings/delivery-charges/:id", h.removeDeliveryCharge)

		api.GET("/metrics", h.getMetrics)
		api.GET("/metrics/low-stock", h.getLowStock)

		api.GET("/reports/export", h.exportReport)
		api.POST("/ai/analysis", h.aiAnalysis)
	}

	return r
}
