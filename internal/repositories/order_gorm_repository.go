package repositories

import (
	"context"
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address != nil && address.ID == "" {
			if err := tx.Create(address).Error; err != nil {
				return wrapErr(err, "failed to create shipping address")
			}
		}
		if address != nil {
			order.ShippingAddressID = address.ID
		}

		if err := tx.Omit("ShippingAddress").Create(order).Error; err != nil {
			return wrapErr(err, "failed to create order")
		}
		return nil
	})
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := withOrderDetails(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err, "order with ID %s", id)
	}
	return &order, nil
}

func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := withOrderDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&orders).Error
	if err != nil {
		return nil, wrapErr(err, "failed to list orders of user %s", userID)
	}
	return orders, nil
}

func (r *GORMOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := withOrderDetails(r.db.WithContext(ctx)).Order("created_at DESC, id").Find(&orders).Error; err != nil {
		return nil, wrapErr(err, "failed to list orders")
	}
	return orders, nil
}

func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, deliveryDate *time.Time) error {
	updates := map[string]any{"order_status": to}
	if deliveryDate != nil {
		updates["delivery_date"] = *deliveryDate
	}
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND order_status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return wrapErr(res.Error, "failed to update status of order %s", id)
	}
	if res.RowsAffected == 0 {
		return conflict("order %s is no longer %s", id, from)
	}
	return nil
}

// Delete removes the order and its items. The shipping address stays with its owner.
func (r *GORMOrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return wrapErr(err, "failed to delete items of order %s", id)
		}
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return wrapErr(res.Error, "failed to delete order %s", id)
		}
		if res.RowsAffected == 0 {
			return notFound("order with ID %s", id)
		}
		return nil
	})
}

func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("ShippingAddress")
}

// GORMAnalyticsRepository is a GORM implementation of AnalyticsRepository.
type GORMAnalyticsRepository struct {
	db *gorm.DB
}

func NewGORMAnalyticsRepository(db *gorm.DB) *GORMAnalyticsRepository {
	return &GORMAnalyticsRepository{db: db}
}

func (r *GORMAnalyticsRepository) Summary(ctx context.Context) (*models.SalesSummary, error) {
	db := r.db.WithContext(ctx)
	summary := &models.SalesSummary{}

	var revenue struct{ Total decimal.Decimal }
	if err := db.Model(&models.Order{}).Select("COALESCE(SUM(total_price), 0) AS total").Scan(&revenue).Error; err != nil {
		return nil, wrapErr(err, "failed to sum revenue")
	}
	summary.TotalRevenue = revenue.Total.Round(2)

	if err := db.Model(&models.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, wrapErr(err, "failed to count orders")
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&summary.TotalCustomers).Error; err != nil {
		return nil, wrapErr(err, "failed to count customers")
	}
	if err := db.Model(&models.Product{}).Count(&summary.TotalProducts).Error; err != nil {
		return nil, wrapErr(err, "failed to count products")
	}
	return summary, nil
}

func (r *GORMAnalyticsRepository) OrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "total_price").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at, id").
		Find(&orders).Error
	if err != nil {
		return nil, wrapErr(err, "failed to load orders between %s and %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return orders, nil
}

func (r *GORMAnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	var top []models.TopProduct
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("product_id, MAX(product_name) AS product_name, SUM(quantity) AS quantity").
		Group("product_id").
		Order("quantity DESC, product_id").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, wrapErr(err, "failed to rank products")
	}
	return top, nil
}
