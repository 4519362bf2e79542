package store

import (
	"sync"

	"github.com/matthieukhl/toposhop/internal/models"
)

// Shop holds the in-memory product catalog and the shopping cart. One
// instance is constructed at startup and shared by every consumer; the
// backend remains the system of record, this is a cache.
type Shop struct {
	mu       sync.Mutex
	products []models.Product
	cart     []models.Product
}

// NewShop creates an empty shop container.
func NewShop() *Shop {
	return &Shop{}
}

// Products returns a copy of the catalog snapshot.
func (s *Shop) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product returns the catalog entry with the given id.
func (s *Shop) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// SetProducts replaces the whole catalog snapshot.
func (s *Shop) SetProducts(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]models.Product, len(products))
	copy(s.products, products)
}

// AddProduct appends a product to the catalog. Ids are server-assigned, no
// duplicate check is made here.
func (s *Shop) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// UpdateProduct merges the patch into the matching catalog entry, a no-op
// when the id is absent. Only the fields present in the patch change: in
// particular stock and inStock stay independent, callers updating stock must
// pass the derived inStock themselves.
func (s *Shop) UpdateProduct(id string, patch models.ProductPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			patch.Apply(&s.products[i])
			return
		}
	}
}

// DeleteProduct removes the matching catalog entry, a no-op when absent.
func (s *Shop) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// Cart returns a copy of the cart contents.
func (s *Shop) Cart() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.cart))
	copy(out, s.cart)
	return out
}

// AddToCart ensures the product is present in the cart. The cart is a set
// keyed by product id, repeated adds of the same product are no-ops.
func (s *Shop) AddToCart(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.cart {
		if item.ID == p.ID {
			return
		}
	}
	s.cart = append(s.cart, p)
}

// RemoveFromCart removes the matching cart entry, a no-op when absent.
func (s *Shop) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// ClearCart empties the cart unconditionally.
func (s *Shop) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// CartTotal sums the prices of the cart contents.
func (s *Shop) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.cart {
		total += item.Price
	}
	return total
}
