package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `products:
  - name: Red Roses
    category: bouquet
    description: a dozen long stem roses
    price: "1500.00"
    stock: 10
  - name: Sunflower Basket
    category: basket
    price: "980.50"
    stock: 4
  - name: Winter Wreath
    category: wreath
    price: "1200"
    stock: 0
    active: false
`

func TestSeedFromFileIsIdempotent(t *testing.T) {
	store := newMemStore()
	catalog := NewCatalogService(store)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))
	ctx := context.Background()

	n, err := catalog.SeedFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = catalog.SeedFromFile(ctx, path)
	require.NoError(t, err)

	all, err := catalog.ListProducts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := catalog.ListProducts(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.True(t, active[1].Price.Equal(decimal.RequireFromString("980.50")))
}

func TestSeedFromFileRejectsBadPrice(t *testing.T) {
	catalog := NewCatalogService(newMemStore())
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - name: Lily\n    price: cheap\n"), 0o600))

	_, err := catalog.SeedFromFile(context.Background(), path)
	require.Error(t, err)

	_, err = catalog.SeedFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestCatalogCreateAndUpdate(t *testing.T) {
	catalog := NewCatalogService(newMemStore())
	ctx := context.Background()

	created, err := catalog.CreateProduct(ctx, ProductParams{Name: " Orchid ", Price: decimal.RequireFromString("799.999"), Stock: 2, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "Orchid", created.Name)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("800")))

	_, err = catalog.CreateProduct(ctx, ProductParams{Name: "Orchid", Price: decimal.NewFromInt(1)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = catalog.CreateProduct(ctx, ProductParams{Name: "Lily", Price: decimal.NewFromInt(-1)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	updated, err := catalog.UpdateProduct(ctx, created.ID, ProductParams{Name: "Orchid", Price: decimal.NewFromInt(900), Stock: 5})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 5, updated.Stock)

	_, err = catalog.UpdateProduct(ctx, 404, ProductParams{Name: "Ghost"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = catalog.GetProduct(ctx, 404)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCartSetItem(t *testing.T) {
	store := newMemStore()
	roses := store.addProduct("Red Roses", 1500, 3)
	carts := NewCartService(store, NewStockGuard(store))
	ctx := context.Background()
	userID := uuid.New()

	_, err := carts.SetItem(ctx, SetCartItemParams{UserID: userID, ProductID: roses.ID, Quantity: 0})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = carts.SetItem(ctx, SetCartItemParams{UserID: userID, ProductID: roses.ID, Quantity: 4})
	assert.True(t, apperr.Is(err, apperr.KindStockInsufficient))

	_, err = carts.SetItem(ctx, SetCartItemParams{UserID: userID, ProductID: 404, Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = carts.SetItem(ctx, SetCartItemParams{UserID: userID, ProductID: roses.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = carts.SetItem(ctx, SetCartItemParams{UserID: userID, ProductID: roses.ID, Quantity: 3})
	require.NoError(t, err)

	lines, err := carts.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, store.product(roses.ID).Stock)

	require.NoError(t, carts.RemoveItem(ctx, userID, roses.ID))
	lines, err = carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
