package routes

import (
	"net/http"

	"tilecrm-backend/config"
	"tilecrm-backend/controllers"
	"tilecrm-backend/metrics"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps is everything the router needs to build its controllers.
type Deps struct {
	DB           *gorm.DB
	Logger       zerolog.Logger
	CORSOrigins  []string
	Issuer       *utils.TokenIssuer
	PasswordHash string
	SecureCookie bool
	Reminders    *services.ReminderService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(d.Logger))

	customerService := services.NewCustomerService(d.DB)
	orderService := services.NewOrderService(d.DB)
	catalogService := services.NewCatalogService(d.DB)
	invoiceService := services.NewInvoiceService(d.DB, customerService)
	dashboardService := services.NewDashboardService(d.DB)
	reminderService := d.Reminders
	if reminderService == nil {
		reminderService = services.NewReminderService(d.DB, nil, "")
	}

	authController := controllers.NewAuthController(d.Issuer, d.PasswordHash, d.SecureCookie)
	customerController := controllers.NewCustomerController(customerService)
	orderController := controllers.NewOrderController(orderService)
	invoiceController := controllers.NewInvoiceController(invoiceService)
	catalogController := controllers.NewCatalogController(catalogService, customerService)
	reminderController := controllers.NewReminderController(reminderService)
	dashboardController := controllers.NewDashboardController(dashboardService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)

		auth.Use(utils.AuthMiddleware(d.Issuer))
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(d.Issuer))
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/export", customerController.ExportCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)

			customers.GET("/:id/orders", orderController.GetOrders)
			customers.POST("/:id/orders", orderController.CreateOrder)

			customers.GET("/:id/invoice", invoiceController.GetInvoice)
			customers.PUT("/:id/invoice", invoiceController.SaveInvoice)
			customers.GET("/:id/receipt.pdf", invoiceController.GetReceipt)

			customers.GET("/:id/reminders", reminderController.GetReminders)
			customers.POST("/:id/reminders", reminderController.CreateReminder)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.PUT("/:id", orderController.UpdateOrder)
			orders.DELETE("/:id", orderController.DeleteOrder)
		}

		api.DELETE("/reminders/:id", reminderController.DeleteReminder)

		// Lookup lists
		api.GET("/companies", catalogController.GetCompanies)
		api.POST("/companies", catalogController.CreateCompany)
		api.GET("/references", catalogController.GetReferences)
		api.POST("/references", catalogController.CreateReference)
		api.GET("/cities", catalogController.GetCities)
		api.GET("/states", catalogController.GetStates)
		api.GET("/constants", catalogController.GetConstants)

		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	return r
}
