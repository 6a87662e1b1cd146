package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders
// Lists the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.orderService.OrdersForUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to list orders for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GET /api/orders/session/:session_id
// Looks an order up by checkout session id. Guest confirmations use this;
// the order row carries no user for them.
func (h *OrderHandler) GetOrderBySession(c *gin.Context) {
	sessionID := c.Param("session_id")

	order, err := h.orderService.OrderBySession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		log.Printf("failed to look up order for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}
