package catalog_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/backendtest"
	"github.com/matthieukhl/toposhop/internal/catalog"
	"github.com/matthieukhl/toposhop/internal/models"
	"github.com/matthieukhl/toposhop/internal/store"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

type fixture struct {
	backend *backendtest.Server
	ts      *httptest.Server
	shop    *store.Shop
	svc     *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := backendtest.NewServer()
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	client := api.NewClient(api.Config{
		BaseURL: ts.URL,
		AuthURL: ts.URL,
		Tokens:  &staticTokens{token: backend.BearerToken},
		Logger:  log,
	})
	shop := store.NewShop()
	return &fixture{
		backend: backend,
		ts:      ts,
		shop:    shop,
		svc:     catalog.NewService(client, shop, log),
	}
}

func TestRefreshReplacesCatalog(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedProduct(models.Product{ID: "1", Name: "GPS", Price: 1200, InStock: true})

	require.NoError(t, f.svc.Refresh(context.Background()))
	products := f.shop.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "GPS", products[0].Name)
}

func TestSetStockCouplesInStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stock := 3
	f.backend.SeedProduct(models.Product{ID: "1", Name: "GPS", Stock: &stock, InStock: true})
	require.NoError(t, f.svc.Refresh(ctx))

	_, err := f.svc.SetStock(ctx, "1", 0)
	require.NoError(t, err)

	p, ok := f.shop.Product("1")
	require.True(t, ok)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 0, *p.Stock)
	assert.False(t, p.InStock)

	_, err = f.svc.SetStock(ctx, "1", 7)
	require.NoError(t, err)
	p, _ = f.shop.Product("1")
	assert.Equal(t, 7, *p.Stock)
	assert.True(t, p.InStock)
}

func TestCreateProductWithImages(t *testing.T) {
	f := newFixture(t)

	product, err := f.svc.CreateProductWithImages(context.Background(), models.ProductInput{
		Name:     "GPS",
		Price:    1200,
		Category: "GPS",
		InStock:  true,
	}, []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)
	require.Len(t, product.Image, 1)

	// Mirrored locally and present remotely.
	_, ok := f.shop.Product(product.ID)
	assert.True(t, ok)
	assert.Len(t, f.backend.Products(), 1)
}

func TestCreateProductWithImagesRollsBackOnUploadFailure(t *testing.T) {
	f := newFixture(t)
	f.backend.FailUploads = true

	_, err := f.svc.CreateProductWithImages(context.Background(), models.ProductInput{
		Name:     "GPS",
		Price:    1200,
		Category: "GPS",
	}, []api.Upload{
		{Name: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.Error(t, err)

	// The half-created product was deleted again, nowhere does it survive.
	assert.Empty(t, f.backend.Products())
	assert.Empty(t, f.shop.Products())
}

func TestUpdateProductMirrorsPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.SeedProduct(models.Product{ID: "1", Name: "GPS", Price: 1200, InStock: true})
	require.NoError(t, f.svc.Refresh(ctx))

	name := "GPS Pro"
	_, err := f.svc.UpdateProduct(ctx, "1", models.ProductPatch{Name: &name})
	require.NoError(t, err)

	p, _ := f.shop.Product("1")
	assert.Equal(t, "GPS Pro", p.Name)
	assert.True(t, p.InStock)
}

func TestDeleteProductMirrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.SeedProduct(models.Product{ID: "1", Name: "GPS"})
	require.NoError(t, f.svc.Refresh(ctx))

	require.NoError(t, f.svc.DeleteProduct(ctx, "1"))
	assert.Empty(t, f.shop.Products())
	assert.Empty(t, f.backend.Products())
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.SeedProduct(models.Product{ID: "1", Name: "GPS", Price: 1200, InStock: true})
	f.backend.SeedProduct(models.Product{ID: "2", Name: "Tripod", Price: 150, InStock: true})
	require.NoError(t, f.svc.Refresh(ctx))

	gps, _ := f.shop.Product("1")
	tripod, _ := f.shop.Product("2")
	f.shop.AddToCart(gps)
	f.shop.AddToCart(tripod)

	order, err := f.svc.Checkout(ctx, catalog.Customer{
		Name:  "Ama Kouassi",
		Email: "ama@example.com",
		Phone: "+225 01 02 03 04",
	}, map[string]int{"2": 3})
	require.NoError(t, err)

	// One GPS, three tripods.
	assert.Equal(t, 1200.0+3*150.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "GPS", order.Products[0].ProductName)

	// The cart is cleared only after the backend accepted the order.
	assert.Empty(t, f.shop.Cart())
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Checkout(context.Background(), catalog.Customer{
		Name: "Ama", Email: "ama@example.com", Phone: "01",
	}, nil)
	assert.ErrorIs(t, err, catalog.ErrEmptyCart)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.SeedProduct(models.Product{ID: "1", Name: "GPS", Price: 1200, InStock: true})
	require.NoError(t, f.svc.Refresh(ctx))

	gps, _ := f.shop.Product("1")
	f.shop.AddToCart(gps)

	// Backend gone: the order cannot be placed, the cart must survive.
	f.ts.Close()
	_, err := f.svc.Checkout(ctx, catalog.Customer{
		Name: "Ama", Email: "ama@example.com", Phone: "01",
	}, nil)
	require.Error(t, err)
	assert.True(t, api.IsNetwork(err))
	assert.Len(t, f.shop.Cart(), 1)
}
