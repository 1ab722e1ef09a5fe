package models

import "github.com/shopspring/decimal"

type SalesSummary struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalCustomers int64           `json:"totalCustomers"`
	TotalProducts  int64           `json:"totalProducts"`
}

type MonthlySales struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type TopProduct struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
}
