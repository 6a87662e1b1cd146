package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe-storefront/internal/models"
	"luxe-storefront/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// POST /api/payments/verify
// Reconciles a checkout session with the persisted order. The notification
// side channel never fails this response.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paymentService.Verify(c.Request.Context(), req.SessionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingSessionID):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, services.ErrInvalidSession):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("failed to verify payment: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "payment verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
