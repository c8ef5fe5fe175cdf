package handlers

import (
	"errors"
	"net/http"

	"dispute-resolution-backend/internal/models"
	"dispute-resolution-backend/internal/services/dispute"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerIDHeader carries the caller identity. It stands in for real
// authentication: the value must equal the customer id being accessed.
const CustomerIDHeader = "X-Customer-ID"

type DisputeHandler struct {
	service *dispute.Service
	logger  *zap.Logger
}

func NewDisputeHandler(service *dispute.Service, logger *zap.Logger) *DisputeHandler {
	return &DisputeHandler{service: service, logger: logger}
}

// authorize enforces the caller-identity contract: missing header is 401,
// header not matching the requested customer is 403.
func (h *DisputeHandler) authorize(c *gin.Context, customerID string) bool {
	caller := c.GetHeader(CustomerIDHeader)
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if caller != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to access this resource"})
		return false
	}
	return true
}

// GetCustomerTransactions returns all transactions for a customer.
func (h *DisputeHandler) GetCustomerTransactions(c *gin.Context) {
	customerID := c.Param("customerId")
	if !h.authorize(c, customerID) {
		return
	}
	c.JSON(http.StatusOK, h.service.GetCustomerTransactions(customerID))
}

// GetTransaction returns a single transaction.
func (h *DisputeHandler) GetTransaction(c *gin.Context) {
	customerID := c.Param("customerId")
	if !h.authorize(c, customerID) {
		return
	}

	tx, ok := h.service.GetTransaction(c.Param("transactionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	if tx.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to access this transaction"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

// CreateDispute files a dispute over a transaction.
func (h *DisputeHandler) CreateDispute(c *gin.Context) {
	var req models.DisputeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if !h.authorize(c, req.CustomerID) {
		return
	}

	resp, err := h.service.CreateDispute(c.Request.Context(), req)
	if err != nil {
		var vErr *dispute.ValidationError
		if errors.As(err, &vErr) {
			body := gin.H{"error": vErr.Message, "kind": vErr.Kind}
			switch vErr.Kind {
			case dispute.KindDisputeWindowExpired:
				body["days_since_transaction"] = vErr.DaysSinceTransaction
			case dispute.KindAmountExceedsLimit:
				body["transaction_amount"] = vErr.Amount
			}
			c.JSON(http.StatusBadRequest, body)
			return
		}
		h.logger.Error("Dispute creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCustomerDisputes returns all disputes filed by a customer.
func (h *DisputeHandler) GetCustomerDisputes(c *gin.Context) {
	customerID := c.Param("customerId")
	if !h.authorize(c, customerID) {
		return
	}

	disputes := h.service.GetCustomerDisputes(customerID)
	views := make([]models.DisputeResponse, 0, len(disputes))
	for _, d := range disputes {
		views = append(views, d.Response())
	}
	c.JSON(http.StatusOK, views)
}

// GetDispute returns a single dispute view.
func (h *DisputeHandler) GetDispute(c *gin.Context) {
	customerID := c.Param("customerId")
	if !h.authorize(c, customerID) {
		return
	}

	d, ok := h.service.GetDispute(c.Param("disputeId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "dispute not found"})
		return
	}
	if d.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to access this dispute"})
		return
	}
	c.JSON(http.StatusOK, d.Response())
}
