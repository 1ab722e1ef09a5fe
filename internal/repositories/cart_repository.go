package repositories

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	// GetByUserID loads the cart with its items and their products.
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, productID string) (*models.CartItem, error)
	GetItem(ctx context.Context, id string) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, id string) error
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return wrapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(cart).Error, "failed to create cart for user %s", cart.UserID)
}

func (r *GORMCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, wrapErr(err, "cart of user %s", userID)
	}
	return &cart, nil
}

func (r *GORMCartRepository) FindItem(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		return nil, wrapErr(err, "cart item for product %s", productID)
	}
	return &item, nil
}

func (r *GORMCartRepository) GetItem(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err, "cart item with ID %s", id)
	}
	return &item, nil
}

func (r *GORMCartRepository) CreateItem(ctx context.Context, item *models.CartItem) error {
	return wrapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error, "failed to create cart item")
}

func (r *GORMCartRepository) UpdateItem(ctx context.Context, item *models.CartItem) error {
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]any{
		"quantity":         item.Quantity,
		"price":            item.Price,
		"discounted_price": item.DiscountedPrice,
		"size":             item.Size,
	}).Error
	return wrapErr(err, "failed to update cart item %s", item.ID)
}

func (r *GORMCartRepository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return wrapErr(res.Error, "failed to delete cart item %s", id)
	}
	if res.RowsAffected == 0 {
		return notFound("cart item with ID %s", id)
	}
	return nil
}
