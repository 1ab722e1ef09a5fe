package repositories

import (
	"context"
	"time"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts the order and its items. When address has no ID it is
	// inserted first and becomes the shipping address. Everything happens in
	// one transaction.
	Create(ctx context.Context, order *models.Order, address *models.Address) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus moves the order from one status to another. It fails with a
	// conflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, deliveryDate *time.Time) error
	Delete(ctx context.Context, id string) error
}

// AnalyticsRepository defines the read-only aggregate queries for the admin dashboard.
type AnalyticsRepository interface {
	Summary(ctx context.Context) (*models.SalesSummary, error)
	// OrdersBetween returns the creation time and total of every order in [from, to).
	OrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
}
