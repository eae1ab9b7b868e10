package routes

import (
	"eldercare_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWebhooks      = "/webhooks"
	PathTenants       = "/tenants/:tenant_id"
	PathSubscriptions = "/subscriptions"
	PathJobs          = "/jobs"
)

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/:gateway", h.Receive)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler) {
	invoices := rg.Group(PathTenants + "/invoices")
	{
		invoices.POST("", h.Generate)
		invoices.GET("", h.List)
		invoices.GET("/:invoice_id", h.Get)
		invoices.POST("/:invoice_id/sync", h.Sync)
		invoices.POST("/:invoice_id/cancel", h.Cancel)
		invoices.POST("/:invoice_id/mark-paid", h.MarkAsPaid)
		invoices.GET("/:invoice_id/pix", h.GetPixQrCode)
		invoices.GET("/:invoice_id/payments", h.ListPayments)
	}

	subscriptions := rg.Group(PathSubscriptions)
	{
		subscriptions.POST("/:subscription_id/first-invoice", h.CreateFirstInvoice)
	}
}

func addReconciliationRoutes(rg *gin.RouterGroup, h *handlers.ReconciliationHandler) {
	accounts := rg.Group(PathTenants + "/bank-accounts/:account_id")
	{
		accounts.POST("/reconciliations", h.Create)
		accounts.GET("/reconciliations", h.List)
		accounts.GET("/unreconciled-transactions", h.ListUnreconciled)
		accounts.GET("/statement", h.Statement)
	}

	reconciliations := rg.Group(PathTenants + "/reconciliations")
	{
		reconciliations.GET("/:id", h.Get)
		reconciliations.PATCH("/:id/status", h.UpdateStatus)
	}
}

func addJobRoutes(rg *gin.RouterGroup, h *handlers.JobHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.POST("/:name/run", h.Run)
		jobs.GET("/:name/last", h.Last)
	}
}
