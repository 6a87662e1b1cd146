package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe-storefront/internal/services"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GET /api/wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.wishlistService.List(userID)})
}

// POST /api/wishlist/:product_id
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	product, err := h.wishlistService.Add(c.Request.Context(), userID, c.Param("product_id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

// DELETE /api/wishlist/:product_id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	h.wishlistService.Remove(userID, c.Param("product_id"))
	c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
}
