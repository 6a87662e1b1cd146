package services

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/shopspring/decimal"

	"luxe-storefront/internal/models"
)

// The storefront charges a flat 7% tax at checkout; the tax-inclusive total
// is computed client-side and sent with the checkout request.
var taxMultiplier = decimal.NewFromFloat(1.07)

// CartStorage persists cart snapshots between sessions.
type CartStorage interface {
	Load() ([]models.CartItem, error)
	Save(items []models.CartItem) error
}

// FileCartStorage keeps the cart in a local JSON file.
type FileCartStorage struct {
	path string
}

func NewFileCartStorage(path string) *FileCartStorage {
	return &FileCartStorage{path: path}
}

func (s *FileCartStorage) Load() ([]models.CartItem, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt snapshot is discarded rather than blocking the cart.
		log.Printf("failed to parse cart snapshot, discarding: %v", err)
		os.Remove(s.path)
		return nil, nil
	}
	return items, nil
}

func (s *FileCartStorage) Save(items []models.CartItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Cart is the client-side cart aggregator. Every mutation is written through
// to storage synchronously, mirroring how the web client persists on change.
type Cart struct {
	mu      sync.Mutex
	items   []models.CartItem
	storage CartStorage
}

// NewCart restores the cart from storage. Storage may be nil for an
// ephemeral cart.
func NewCart(storage CartStorage) *Cart {
	cart := &Cart{storage: storage}
	if storage != nil {
		items, err := storage.Load()
		if err != nil {
			log.Printf("failed to load cart snapshot: %v", err)
		}
		cart.items = items
	}
	return cart
}

// AddItem merges quantity into an existing line for the same product, or
// appends a new line.
func (c *Cart) AddItem(item models.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			c.persist()
			return
		}
	}
	c.items = append(c.items, item)
	c.persist()
}

func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// UpdateQuantity sets the quantity for a line; zero or negative removes it.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist()
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the pre-tax sum of price x quantity in major units.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range c.items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return subtotal
}

// TaxInclusiveTotal is the amount sent to checkout: subtotal x 1.07.
func (c *Cart) TaxInclusiveTotal() decimal.Decimal {
	return c.Subtotal().Mul(taxMultiplier)
}

// persist is called with the lock held. Snapshot failures are logged, not
// surfaced; the in-memory cart stays authoritative for the session.
func (c *Cart) persist() {
	if c.storage == nil {
		return
	}
	if err := c.storage.Save(c.items); err != nil {
		log.Printf("failed to save cart snapshot: %v", err)
	}
}
