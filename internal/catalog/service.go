package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/models"
	"github.com/matthieukhl/toposhop/internal/store"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart.
var ErrEmptyCart = errors.New("cart is empty")

// Service composes the API client and the shop container: every mutation
// goes to the backend first and is mirrored into the local state only after
// the backend accepted it.
type Service struct {
	api  *api.Client
	shop *store.Shop
	log  *logrus.Logger
}

// NewService creates a catalog service.
func NewService(client *api.Client, shop *store.Shop, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{api: client, shop: shop, log: log}
}

// Refresh replaces the catalog snapshot with a fresh fetch-all.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}
	s.shop.SetProducts(products)
	return nil
}

// CreateProduct creates a product on the backend and mirrors it into the
// catalog.
func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	s.shop.AddProduct(*product)
	return product, nil
}

// CreateProductWithImages creates a product and uploads its images as one
// logical step. When the upload fails the freshly created product is
// deleted again, so the catalog never keeps a half-created entry.
func (s *Service) CreateProductWithImages(ctx context.Context, in models.ProductInput, files []api.Upload) (*models.Product, error) {
	product, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}

	if len(files) > 0 {
		urls, err := s.api.UploadProductImages(ctx, product.ID, files)
		if err != nil {
			s.log.WithFields(logrus.Fields{"product": product.ID}).Warn("image upload failed, rolling back product")
			if delErr := s.api.DeleteProduct(ctx, product.ID); delErr != nil {
				return nil, fmt.Errorf("image upload failed: %w (rollback also failed: %v)", err, delErr)
			}
			return nil, fmt.Errorf("image upload failed, product rolled back: %w", err)
		}
		product.Image = append(product.Image, urls...)
	}

	s.shop.AddProduct(*product)
	return product, nil
}

// UpdateProduct applies a partial update remotely and mirrors it locally.
// The patch is applied as given: updating stock here does not touch inStock,
// use SetStock for coupled changes.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	product, err := s.api.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.shop.UpdateProduct(id, patch)
	return product, nil
}

// DeleteProduct deletes remotely and mirrors locally.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.shop.DeleteProduct(id)
	return nil
}

// SetStock updates a product's stock count and keeps the inStock flag
// consistent: both fields are written together, the store itself never
// derives one from the other.
func (s *Service) SetStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	product, err := s.api.UpdateStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	inStock := models.DerivedInStock(quantity)
	s.shop.UpdateProduct(id, models.ProductPatch{
		Stock:   &quantity,
		InStock: &inStock,
	})
	return product, nil
}

// Customer identifies the person placing an order at checkout.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Checkout turns the cart into an order. Quantities default to one per cart
// entry and can be raised per product id. The cart is cleared only after
// the backend accepted the order.
func (s *Service) Checkout(ctx context.Context, customer Customer, quantities map[string]int) (*models.Order, error) {
	cart := s.shop.Cart()
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	in := models.OrderInput{
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
	}
	for _, item := range cart {
		qty := quantities[item.ID]
		if qty < 1 {
			qty = 1
		}
		in.Products = append(in.Products, models.OrderItemInput{
			ProductID: item.ID,
			Quantity:  qty,
			Price:     item.Price,
		})
		in.Total += float64(qty) * item.Price
	}

	order, err := s.api.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	s.shop.ClearCart()
	s.log.WithFields(logrus.Fields{"order": order.ID, "total": order.Total}).Info("order placed")
	return order, nil
}
