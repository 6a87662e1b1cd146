package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/models"
)

func TestCart_AddItem_MergesQuantities(t *testing.T) {
	cart := NewCart(nil)

	cart.AddItem(models.CartItem{ID: "bag-001", Name: "Monogram Canvas Handbag", Price: 2490, Quantity: 1})
	cart.AddItem(models.CartItem{ID: "bag-001", Name: "Monogram Canvas Handbag", Price: 2490, Quantity: 2})
	cart.AddItem(models.CartItem{ID: "wallet-001", Name: "Leather Zip Wallet", Price: 790, Quantity: 1})

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 4, cart.TotalItems())
}

func TestCart_UpdateQuantity_RemovesAtZero(t *testing.T) {
	cart := NewCart(nil)
	cart.AddItem(models.CartItem{ID: "bag-001", Price: 2490, Quantity: 2})

	cart.UpdateQuantity("bag-001", 5)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 5, cart.Items()[0].Quantity)

	cart.UpdateQuantity("bag-001", 0)
	assert.Empty(t, cart.Items())
}

func TestCart_TaxInclusiveTotal(t *testing.T) {
	cart := NewCart(nil)
	cart.AddItem(models.CartItem{ID: "bag-001", Price: 2490, Quantity: 1})

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("2490")),
		"subtotal was %s", cart.Subtotal())

	// 2490 x 1.07 = 2664.3
	total := cart.TaxInclusiveTotal()
	assert.True(t, total.Equal(decimal.RequireFromString("2664.3")),
		"tax-inclusive total was %s", total)
}

func TestCart_SnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileCartStorage(path)

	cart := NewCart(storage)
	cart.AddItem(models.CartItem{ID: "bag-001", Name: "Monogram Canvas Handbag", Price: 2490, Quantity: 1})
	cart.AddItem(models.CartItem{ID: "wallet-001", Name: "Leather Zip Wallet", Price: 790, Quantity: 2})

	restored := NewCart(NewFileCartStorage(path))
	items := restored.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "bag-001", items[0].ID)
	assert.Equal(t, 2, items[1].Quantity)

	restored.Clear()
	again := NewCart(NewFileCartStorage(path))
	assert.Empty(t, again.Items())
}

func TestFileCartStorage_DiscardsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	items, err := NewFileCartStorage(path).Load()
	require.NoError(t, err)
	assert.Nil(t, items)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "corrupt snapshot should be removed")
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{2490, 249000},
		{2664.3, 266430},
		{790, 79000},
		{0.1, 10},
		{19.995, 2000}, // rounds half away from zero
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinorUnits(tt.amount), "amount %v", tt.amount)
	}
}
