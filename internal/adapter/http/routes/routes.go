package routes

import (
	"net/http"

	_ "eldercare_billing/docs"
	"eldercare_billing/internal/adapter/http/handlers"
	"eldercare_billing/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Invoice        *handlers.InvoiceHandler
	Webhook        *handlers.WebhookHandler
	Reconciliation *handlers.ReconciliationHandler
	Job            *handlers.JobHandler
}

// NewRouter builds the gin engine with every public route.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addPingRoutes(&router.RouterGroup)
	addWebhookRoutes(&router.RouterGroup, h.Webhook)

	v1 := router.Group("/v1")
	addInvoiceRoutes(v1, h.Invoice)
	addReconciliationRoutes(v1, h.Reconciliation)
	addJobRoutes(v1, h.Job)

	return router
}

func setMiddlewares(router *gin.Engine) {
	log := logger.WithComponent("http.router")
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
