package models

import (
	"math"

	"github.com/shopspring/decimal"
)

type StockFilter string

const (
	StockAny        StockFilter = ""
	StockInStock    StockFilter = "in_stock"
	StockOutOfStock StockFilter = "out_of_stock"
)

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceLow  SortOrder = "price_low"
	SortPriceHigh SortOrder = "price_high"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
	// MaxOffset bounds (pageNumber-1)*pageSize so the offset cannot overflow.
	MaxOffset = math.MaxInt32
)

// ProductQuery is a validated catalog filter. Empty fields do not filter.
type ProductQuery struct {
	Category    string
	Subcategory string
	Color       string
	Sizes       []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Stock       StockFilter
	Sort        SortOrder
	PageNumber  int
	PageSize    int
}

// Offset is the number of rows skipped before the requested page.
func (q ProductQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Content       []Product `json:"content"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
	TotalProducts int64     `json:"totalProducts"`
}

// NewProductPage computes TotalPages as ceil(total / pageSize).
func NewProductPage(content []Product, q ProductQuery, total int64) ProductPage {
	if content == nil {
		content = []Product{}
	}
	pages := 0
	if q.PageSize > 0 {
		pages = int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	}
	return ProductPage{
		Content:       content,
		CurrentPage:   q.PageNumber,
		TotalPages:    pages,
		TotalProducts: total,
	}
}
