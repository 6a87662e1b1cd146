package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"luxe-storefront/internal/models"
)

// ProductService serves the luxury catalog. The catalog is read-only after
// seeding; there is no inventory tracking in the storefront.
type ProductService struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	ids      []string // sorted for stable pagination
}

func NewProductService() *ProductService {
	return &ProductService{
		products: make(map[string]*models.Product),
	}
}

// InitSampleData seeds the catalog.
func (s *ProductService) InitSampleData() {
	now := time.Now()
	catalog := []*models.Product{
		{
			ID: "bag-001", Name: "Monogram Canvas Handbag", Category: "bags", Price: 2490,
			Description: "Iconic monogram canvas handbag with signature gold-tone hardware.",
			Details:     []string{"Leather trim", "Gold-tone hardware", "Microfiber lining"},
			Colors:      []string{"#A1866E", "#21201F", "#90002D"},
			Images:      []string{"https://images.unsplash.com/photo-1584917865442-de89df76afd3"},
			Featured:    true, Bestseller: true,
		},
		{
			ID: "bag-002", Name: "Embossed Leather Tote", Category: "bags", Price: 3290,
			Description: "Sophisticated tote bag crafted from premium embossed leather.",
			Details:     []string{"Full-grain embossed leather", "Interior zip pocket", "Protective metal feet"},
			Colors:      []string{"#F5F5DC", "#21201F", "#5B432E"},
			Images:      []string{"https://images.unsplash.com/photo-1590739293931-a0a507c73077"},
			New:         true,
		},
		{
			ID: "bag-003", Name: "Classic Quilted Flap Bag", Category: "bags", Price: 5500,
			Description: "Timeless quilted leather flap bag with chain strap.",
			Details:     []string{"Lambskin leather", "Diamond quilting pattern", "Chain and leather strap"},
			Colors:      []string{"#21201F", "#A52A2A", "#F5F5DC"},
			Images:      []string{"https://images.unsplash.com/photo-1566150905458-1bf1fc113f0d"},
			Featured:    true,
		},
		{
			ID: "wallet-001", Name: "Leather Zip Wallet", Category: "wallets", Price: 790,
			Description: "Slim zip-around wallet in grained calfskin.",
			Details:     []string{"Grained calfskin", "Twelve card slots", "Zipped coin pocket"},
			Colors:      []string{"#21201F", "#5B432E"},
			Images:      []string{"https://images.unsplash.com/photo-1627123424574-724758594e93"},
			Bestseller:  true,
		},
		{
			ID: "wallet-002", Name: "Monogram Card Holder", Category: "wallets", Price: 450,
			Description: "Compact card holder in monogram canvas.",
			Details:     []string{"Coated canvas", "Four card slots", "Flat pocket"},
			Colors:      []string{"#A1866E", "#21201F"},
			Images:      []string{"https://images.unsplash.com/photo-1606422748879-62b2f5c05d15"},
		},
		{
			ID: "sneaker-001", Name: "Signature Low-Top Sneakers", Category: "sneakers", Price: 1150,
			Description: "Low-top sneakers in calf leather with signature detailing.",
			Details:     []string{"Calf leather upper", "Rubber outsole", "Embossed logo"},
			Colors:      []string{"#FFFFFF", "#21201F"},
			Images:      []string{"https://images.unsplash.com/photo-1560769629-975ec94e6a86"},
			Featured:    true, New: true,
		},
		{
			ID: "sneaker-002", Name: "Runner Knit Sneakers", Category: "sneakers", Price: 990,
			Description: "Technical knit runners with sculpted sole.",
			Details:     []string{"Technical knit upper", "Sculpted rubber sole"},
			Colors:      []string{"#21201F", "#708090"},
			Images:      []string{"https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a"},
		},
		{
			ID: "clothing-001", Name: "Silk Twill Shirt", Category: "clothing", Price: 1390,
			Description: "Relaxed-fit shirt cut from printed silk twill.",
			Details:     []string{"100% silk twill", "Mother-of-pearl buttons"},
			Colors:      []string{"#F5F5DC", "#90002D"},
			Images:      []string{"https://images.unsplash.com/photo-1598033129183-c4f50c736f10"},
			New:         true,
		},
		{
			ID: "clothing-002", Name: "Cashmere Crewneck Sweater", Category: "clothing", Price: 1690,
			Description: "Crewneck sweater knit from double-ply cashmere.",
			Details:     []string{"Double-ply cashmere", "Ribbed trims"},
			Colors:      []string{"#A1866E", "#21201F", "#708090"},
			Images:      []string{"https://images.unsplash.com/photo-1576871337622-98d48d1cf531"},
			Bestseller:  true,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range catalog {
		product.CreatedAt = now
		s.products[product.ID] = product
		s.ids = append(s.ids, product.ID)
	}
	sort.Strings(s.ids)
}

// All returns a page of the catalog and the total count.
func (s *ProductService) All(page, limit int) ([]models.Product, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.ids)
	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	products := make([]models.Product, 0, end-start)
	for _, id := range s.ids[start:end] {
		products = append(products, *s.products[id])
	}
	return products, total
}

func (s *ProductService) ByID(id string) (*models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, false
	}
	copied := *product
	return &copied, true
}

// Search filters by free-text query, category and price range.
func (s *ProductService) Search(query, category string, minPrice, maxPrice float64, page, limit int) ([]models.Product, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)

	var results []models.Product
	for _, id := range s.ids {
		product := s.products[id]
		matchesQuery := query == "" ||
			strings.Contains(strings.ToLower(product.Name), query) ||
			strings.Contains(strings.ToLower(product.Description), query)
		matchesCategory := category == "" || product.Category == category
		matchesPrice := (minPrice == 0 || product.Price >= minPrice) &&
			(maxPrice == 0 || product.Price <= maxPrice)

		if matchesQuery && matchesCategory && matchesPrice {
			results = append(results, *product)
		}
	}

	total := len(results)
	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return results[start:end], total
}
