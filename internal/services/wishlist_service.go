package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"luxe-storefront/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// WishlistService keeps per-user saved products.
type WishlistService struct {
	mu            sync.RWMutex
	saved         map[string]map[string]time.Time // user id -> product id -> saved at
	products      *ProductService
	notifications *NotificationService
}

func NewWishlistService(products *ProductService, notifications *NotificationService) *WishlistService {
	return &WishlistService{
		saved:         make(map[string]map[string]time.Time),
		products:      products,
		notifications: notifications,
	}
}

// Add saves a product to the user's wishlist and drops a note in their feed.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) (*models.Product, error) {
	product, exists := s.products.ByID(productID)
	if !exists {
		return nil, ErrProductNotFound
	}

	s.mu.Lock()
	if s.saved[userID] == nil {
		s.saved[userID] = make(map[string]time.Time)
	}
	_, already := s.saved[userID][productID]
	s.saved[userID][productID] = time.Now()
	s.mu.Unlock()

	if !already {
		description := fmt.Sprintf("%s has been saved to your wishlist.", product.Name)
		if _, err := s.notifications.Publish(ctx, userID, "Saved to Wishlist", description, models.NotificationTypeSystem); err != nil {
			log.Printf("failed to publish wishlist notification: %v", err)
		}
	}
	return product, nil
}

func (s *WishlistService) Remove(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.saved[userID], productID)
}

// List returns the user's saved products, most recently saved first.
func (s *WishlistService) List(userID string) []models.Product {
	s.mu.RLock()
	ids := make([]string, 0, len(s.saved[userID]))
	for id := range s.saved[userID] {
		ids = append(ids, id)
	}
	savedAt := s.saved[userID]
	sort.Slice(ids, func(i, j int) bool { return savedAt[ids[i]].After(savedAt[ids[j]]) })
	s.mu.RUnlock()

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if product, exists := s.products.ByID(id); exists {
			products = append(products, *product)
		}
	}
	return products
}
