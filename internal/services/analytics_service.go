package services

import (
	"context"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	DefaultTopProducts = 5
	MaxTopProducts     = 50
)

// AnalyticsService backs the admin dashboard.
type AnalyticsService struct {
	repo     repositories.AnalyticsRepository
	location *time.Location
}

func NewAnalyticsService(repo repositories.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, location: time.Local}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*models.SalesSummary, error) {
	return s.repo.Summary(ctx)
}

// Sales returns twelve monthly revenue totals for year, January first.
func (s *AnalyticsService) Sales(ctx context.Context, year int) ([]models.MonthlySales, error) {
	if year < 1970 || year > 9999 {
		return nil, apperr.Invalid("year", "must be between 1970 and 9999")
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.location)
	orders, err := s.repo.OrdersBetween(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	sales := make([]models.MonthlySales, 12)
	for i := range sales {
		sales[i] = models.MonthlySales{Month: i + 1, Total: decimal.Zero}
	}
	for _, o := range orders {
		m := o.CreatedAt.In(s.location).Month()
		sales[m-1].Total = sales[m-1].Total.Add(o.TotalPrice)
	}
	return sales, nil
}

// TopProducts ranks products by units sold. A non-positive limit means the default.
func (s *AnalyticsService) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	if limit > MaxTopProducts {
		return nil, apperr.Invalid("limit", "must be at most 50")
	}
	top, err := s.repo.TopProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []models.TopProduct{}
	}
	return top, nil
}
