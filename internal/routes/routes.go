package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handler "dispute-resolution-backend/internal/handlers"
	service "dispute-resolution-backend/internal/services/dispute"
)

const apiVersion = "0.1.0"

func RegisterRoutes(r *gin.Engine, disputeService *service.Service, logger *zap.Logger) {
	disputeHandler := handler.NewDisputeHandler(disputeService, logger)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Transaction Disputes API",
			"version": apiVersion,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Transaction routes
	tx := api.Group("/transactions")
	tx.GET("/:customerId", disputeHandler.GetCustomerTransactions)
	tx.GET("/:customerId/:transactionId", disputeHandler.GetTransaction)

	// Dispute routes
	disputes := api.Group("/disputes")
	disputes.POST("", disputeHandler.CreateDispute)
	disputes.GET("/:customerId", disputeHandler.GetCustomerDisputes)
	disputes.GET("/:customerId/:disputeId", disputeHandler.GetDispute)
}
