package models

// MonthlySale is one month of aggregated sales.
type MonthlySale struct {
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	OrderCount int     `json:"orderCount"`
}

// TopProduct is a best-seller entry in the statistics report.
type TopProduct struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Sales        int     `json:"sales"`
	ProductPrice float64 `json:"productPrice"`
}

// Statistics is the server-side aggregate report. The client performs no
// aggregation of its own.
type Statistics struct {
	LowStockItems int           `json:"lowStockItems"`
	MonthlySales  []MonthlySale `json:"monthlySales"`
	TotalUsers    int           `json:"totalUsers"`
	RecentOrders  int           `json:"recentOrders"`
	TopProducts   []TopProduct  `json:"topProducts"`
	TotalOrders   int           `json:"totalOrders"`
	TotalProducts int           `json:"totalProducts"`
	TotalRevenue  float64       `json:"totalRevenue"`
}
