package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Statuses lists every valid order status.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order in status s may move to target.
// Only the terminal rule is enforced; ordering between the live states is
// left to the backend.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if !target.Valid() {
		return false
	}
	return !s.Terminal()
}

// OrderLine is a product snapshot inside an order: name and unit price are
// captured at order time and do not follow later catalog edits.
type OrderLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Subtotal is quantity times unit price.
func (l OrderLine) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}

// Order is a customer order as served by the backend.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Products      []OrderLine `json:"orderProducts"`
	Total         float64     `json:"total"`
	Status        OrderStatus `json:"status"`
	CreatedAt     string      `json:"createdAt,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
}

// ComputedTotal sums the line subtotals. It must equal Total on a
// well-formed order.
func (o Order) ComputedTotal() float64 {
	var total float64
	for _, l := range o.Products {
		total += l.Subtotal()
	}
	return total
}

// OrderItemInput is one line of an order creation payload.
type OrderItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// OrderInput is the payload for creating an order.
type OrderInput struct {
	CustomerName  string           `json:"customer_name" validate:"required"`
	CustomerEmail string           `json:"customer_email" validate:"required,email"`
	CustomerPhone string           `json:"customer_phone" validate:"required"`
	Products      []OrderItemInput `json:"orderProducts" validate:"required,min=1,dive"`
	Total         float64          `json:"total" validate:"gte=0"`
}
