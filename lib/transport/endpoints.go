package transport

import (
	cache "github.com/SporkHubr/echo-http-cache"
	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/controllers"
	"github.com/opsdeskhq/opsdesk/lib/service"
)

func RegisterEndpoints(svc *service.OpsdeskService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc, cacheClient *cache.Client) {
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, logMw)
	if svc.Config.AllowAccountCreation {
		e.POST("/users", controllers.NewUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}
	e.GET("/health", controllers.NewHealthController(svc).Health)

	clientCtrl := controllers.NewClientController(svc)
	secured.GET("/clients", clientCtrl.GetClients)
	secured.POST("/clients", clientCtrl.CreateClient)
	secured.GET("/clients/:client_id", clientCtrl.GetClient)
	secured.PUT("/clients/:client_id", clientCtrl.UpdateClient)
	secured.DELETE("/clients/:client_id", clientCtrl.DeleteClient)

	projectCtrl := controllers.NewProjectController(svc)
	secured.GET("/projects", projectCtrl.GetProjects)
	secured.POST("/projects", projectCtrl.CreateProject)
	secured.GET("/projects/:project_id", projectCtrl.GetProject)
	secured.PUT("/projects/:project_id", projectCtrl.UpdateProject)
	secured.DELETE("/projects/:project_id", projectCtrl.DeleteProject)

	timeEntryCtrl := controllers.NewTimeEntryController(svc)
	secured.GET("/timer", timeEntryCtrl.TimerStatus)
	secured.POST("/timer/start", timeEntryCtrl.StartTimer)
	secured.POST("/timer/stop", timeEntryCtrl.StopTimer)
	secured.GET("/time-entries", timeEntryCtrl.GetTimeEntries)
	secured.GET("/time-entries/:entry_id", timeEntryCtrl.GetTimeEntry)
	secured.PUT("/time-entries/:entry_id", timeEntryCtrl.UpdateTimeEntry)
	secured.DELETE("/time-entries/:entry_id", timeEntryCtrl.DeleteTimeEntry)

	invoiceCtrl := controllers.NewInvoiceController(svc)
	secured.GET("/invoices", invoiceCtrl.GetInvoices)
	secured.GET("/invoices/:invoice_id", invoiceCtrl.GetInvoice)
	secured.POST("/invoices", invoiceCtrl.CreateInvoice)
	secured.POST("/invoices/:invoice_id/entries", invoiceCtrl.AddEntries)
	secured.PUT("/invoices/:invoice_id", invoiceCtrl.UpdateInvoice)
	securedWithStrictRateLimit.POST("/invoices/:invoice_id/publish", invoiceCtrl.PublishInvoice)
	securedWithStrictRateLimit.POST("/invoices/:invoice_id/pay", invoiceCtrl.MarkPaid)
	secured.GET("/invoices/:invoice_id/pdf", invoiceCtrl.GetInvoicePDF)
	secured.GET("/invoices/:invoice_id/qr", invoiceCtrl.GetPaymentQR)

	statsCtrl := controllers.NewStatsController(svc)
	secured.GET("/stats", statsCtrl.Stats, cacheClient.Middleware())
}
