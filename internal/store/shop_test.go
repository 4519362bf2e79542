package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/toposhop/internal/models"
)

func gpsProduct() models.Product {
	stock := 3
	return models.Product{
		ID:      "1",
		Name:    "GPS",
		Price:   1200,
		Stock:   &stock,
		InStock: true,
	}
}

func TestAddToCartIsIdempotent(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct()})

	shop.AddToCart(gpsProduct())
	shop.AddToCart(gpsProduct())

	cart := shop.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "1", cart[0].ID)
}

func TestRemoveFromCartAbsentIsNoOp(t *testing.T) {
	shop := NewShop()
	shop.AddToCart(gpsProduct())

	shop.RemoveFromCart("2")
	require.Len(t, shop.Cart(), 1)

	shop.RemoveFromCart("1")
	shop.RemoveFromCart("1")
	assert.Empty(t, shop.Cart())
}

func TestClearCartAlwaysEmpties(t *testing.T) {
	shop := NewShop()
	shop.ClearCart()
	assert.Empty(t, shop.Cart())

	shop.AddToCart(gpsProduct())
	shop.AddToCart(models.Product{ID: "2", Name: "Theodolite", Price: 2400})
	shop.ClearCart()
	assert.Empty(t, shop.Cart())
}

func TestCartScenario(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct()})

	p, ok := shop.Product("1")
	require.True(t, ok)
	shop.AddToCart(p)
	shop.AddToCart(p)
	require.Len(t, shop.Cart(), 1)

	shop.RemoveFromCart("2")
	require.Len(t, shop.Cart(), 1)

	shop.ClearCart()
	require.Len(t, shop.Cart(), 0)
}

func TestUpdateProductStockDoesNotFlipInStock(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct()})

	// Stock and inStock are independently settable: zeroing the count
	// alone leaves the flag untouched.
	zero := 0
	shop.UpdateProduct("1", models.ProductPatch{Stock: &zero})

	p, ok := shop.Product("1")
	require.True(t, ok)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 0, *p.Stock)
	assert.True(t, p.InStock)
}

func TestUpdateProductScenario(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct()})

	zero := 0
	no := false
	shop.UpdateProduct("1", models.ProductPatch{Stock: &zero, InStock: &no})

	p, ok := shop.Product("1")
	require.True(t, ok)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 0, *p.Stock)
	assert.False(t, p.InStock)

	name := "GPS Pro"
	shop.UpdateProduct("1", models.ProductPatch{Name: &name})

	p, ok = shop.Product("1")
	require.True(t, ok)
	assert.Equal(t, "GPS Pro", p.Name)
	assert.Equal(t, 0, *p.Stock)
	assert.False(t, p.InStock)
}

func TestUpdateProductAbsentIsNoOp(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct()})

	name := "Renamed"
	shop.UpdateProduct("missing", models.ProductPatch{Name: &name})

	products := shop.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "GPS", products[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct(), {ID: "2", Name: "Theodolite"}})

	shop.DeleteProduct("1")
	products := shop.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "2", products[0].ID)

	// Absent id is a no-op.
	shop.DeleteProduct("1")
	assert.Len(t, shop.Products(), 1)
}

func TestSetProductsReplacesSnapshot(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct(), {ID: "2"}})
	shop.SetProducts([]models.Product{{ID: "3", Name: "Level"}})

	products := shop.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "3", products[0].ID)
}

func TestProductsReturnsCopy(t *testing.T) {
	shop := NewShop()
	shop.SetProducts([]models.Product{gpsProduct()})

	snapshot := shop.Products()
	snapshot[0].Name = "mutated"

	p, ok := shop.Product("1")
	require.True(t, ok)
	assert.Equal(t, "GPS", p.Name)
}

func TestCartTotal(t *testing.T) {
	shop := NewShop()
	shop.AddToCart(models.Product{ID: "1", Price: 1200})
	shop.AddToCart(models.Product{ID: "2", Price: 800})
	assert.Equal(t, 2000.0, shop.CartTotal())
}
