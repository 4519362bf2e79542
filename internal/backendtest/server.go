// Package backendtest provides an in-process fake of the shop backend's
// HTTP contract. Tests point the API client at it instead of the real
// service.
package backendtest

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/toposhop/internal/models"
)

// Server is a fake shop backend holding its data in memory.
type Server struct {
	// Credentials accepted by the login endpoint and the token it issues.
	Email       string
	Password    string
	BearerToken string

	// FailUploads makes every media upload return a server error, for
	// exercising the create-then-upload rollback.
	FailUploads bool

	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	orders     []models.Order
	nextID     int

	engine *gin.Engine
}

// NewServer creates a fake backend with default test credentials.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Email:       "admin@example.com",
		Password:    "topo-secret",
		BearerToken: "test-bearer-token",
	}
	s.engine = gin.New()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, ready for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SeedProduct adds a product directly to the fake catalog.
func (s *Server) SeedProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// SeedCategory adds a category directly.
func (s *Server) SeedCategory(c models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
}

// SeedOrder adds an order directly.
func (s *Server) SeedOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
}

// Products returns a copy of the fake catalog.
func (s *Server) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Server) setupRoutes() {
	e := s.engine

	e.POST("/auth/login", s.login)
	e.POST("/contact", s.contact)

	e.GET("/products", s.listProducts)
	e.GET("/products/:id", s.getProduct)
	e.GET("/categories", s.listCategories)
	e.GET("/orders", s.listOrders)
	e.GET("/orders/:id", s.getOrder)
	e.POST("/orders", s.createOrder)

	authed := e.Group("/", s.requireAuth)
	{
		authed.POST("/products", s.createProduct)
		authed.PUT("/products/:id", s.updateProduct)
		authed.DELETE("/products/:id", s.deleteProduct)
		authed.PUT("/products/:id/stock", s.updateStock)
		authed.POST("/categories", s.createCategory)
		authed.PUT("/categories/:id", s.updateCategory)
		authed.DELETE("/categories/:id", s.deleteCategory)
		authed.PUT("/orders/:id/status", s.updateOrderStatus)
		authed.GET("/statistics", s.statistics)
		authed.POST("/upload", s.uploadSingle)
		authed.POST("/media/upload/:id", s.uploadProductImages)
		authed.DELETE("/media/:id", s.deleteMedia)
	}
}

func (s *Server) requireAuth(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.BearerToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Email != s.Email || req.Password != s.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": s.BearerToken})
}

func (s *Server) contact(c *gin.Context) {
	var in models.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.products)
}

func (s *Server) findProduct(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findProduct(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, s.products[i])
}

func (s *Server) createProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product := models.Product{
		ID:          s.newID("prod"),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
		InStock:     in.InStock,
		Rating:      in.Rating,
		Stock:       in.Stock,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.products = append(s.products, product)
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findProduct(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	patch.Apply(&s.products[i])
	s.products[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, s.products[i])
}

func (s *Server) deleteProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findProduct(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) updateStock(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findProduct(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	qty := req.Quantity
	s.products[i].Stock = &qty
	s.products[i].InStock = models.DerivedInStock(qty)
	s.products[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, s.products[i])
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.categories)
}

func (s *Server) findCategory(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) createCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	category := models.Category{
		ID:          s.newID("cat"),
		Name:        in.Name,
		Description: in.Description,
	}
	s.categories = append(s.categories, category)
	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findCategory(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	s.categories[i].Name = in.Name
	s.categories[i].Description = in.Description
	c.JSON(http.StatusOK, s.categories[i])
}

func (s *Server) deleteCategory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findCategory(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.orders)
}

func (s *Server) findOrder(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) getOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findOrder(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, s.orders[i])
}

func (s *Server) createOrder(c *gin.Context) {
	var in models.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order := models.Order{
		ID:            s.newID("order"),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Total:         in.Total,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	for _, line := range in.Products {
		name := ""
		if i := s.findProduct(line.ProductID); i >= 0 {
			name = s.products[i].Name
		}
		order.Products = append(order.Products, models.OrderLine{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	s.orders = append(s.orders, order)
	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findOrder(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if !s.orders[i].Status.CanTransition(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order is in a terminal status"})
		return
	}
	s.orders[i].Status = req.Status
	s.orders[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, s.orders[i])
}

func (s *Server) statistics(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := models.Statistics{
		TotalProducts: len(s.products),
		TotalOrders:   len(s.orders),
		RecentOrders:  len(s.orders),
		TotalUsers:    1,
		MonthlySales:  []models.MonthlySale{},
		TopProducts:   []models.TopProduct{},
	}
	for _, p := range s.products {
		if p.Stock != nil && *p.Stock < 5 {
			stats.LowStockItems++
		}
	}
	for _, o := range s.orders {
		stats.TotalRevenue += o.Total
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) uploadSingle(c *gin.Context) {
	if s.FailUploads {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"url": "/media/" + s.newID("img") + "/" + file.Filename})
}

func (s *Server) uploadProductImages(c *gin.Context) {
	if s.FailUploads {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "images are required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findProduct(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	var urls []string
	for _, file := range form.File["images"] {
		media := models.Media{
			ID:  s.newID("media"),
			URL: "/media/" + file.Filename,
		}
		s.products[i].Medias = append(s.products[i].Medias, media)
		urls = append(urls, media.URL)
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

func (s *Server) deleteMedia(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for i := range s.products {
		for j := range s.products[i].Medias {
			if s.products[i].Medias[j].ID == id {
				s.products[i].Medias = append(s.products[i].Medias[:j], s.products[i].Medias[j+1:]...)
				c.Status(http.StatusNoContent)
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
}
