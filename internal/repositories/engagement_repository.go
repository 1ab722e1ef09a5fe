package repositories

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	// Add is idempotent: adding a product twice keeps one entry.
	Add(ctx context.Context, item *models.WishlistItem) error
	Remove(ctx context.Context, userID, productID string) error
}

// ReviewRepository defines the interface for review and rating data access.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context, productID string) ([]models.Review, error)
	CreateRating(ctx context.Context, rating *models.Rating) error
	ListRatings(ctx context.Context, productID string) ([]models.Rating, error)
}

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{db: db}
}

func (r *GORMWishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&items).Error
	if err != nil {
		return nil, wrapErr(err, "failed to load wishlist of user %s", userID)
	}
	return items, nil
}

func (r *GORMWishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(item).Error
	return wrapErr(err, "failed to add product %s to wishlist", item.ProductID)
}

func (r *GORMWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return wrapErr(res.Error, "failed to remove product %s from wishlist", productID)
	}
	if res.RowsAffected == 0 {
		return notFound("product %s in wishlist", productID)
	}
	return nil
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return wrapErr(r.db.WithContext(ctx).Create(review).Error, "failed to create review")
}

func (r *GORMReviewRepository) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC, id").Find(&reviews).Error; err != nil {
		return nil, wrapErr(err, "failed to list reviews of product %s", productID)
	}
	return reviews, nil
}

func (r *GORMReviewRepository) CreateRating(ctx context.Context, rating *models.Rating) error {
	return wrapErr(r.db.WithContext(ctx).Create(rating).Error, "failed to create rating")
}

func (r *GORMReviewRepository) ListRatings(ctx context.Context, productID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC, id").Find(&ratings).Error; err != nil {
		return nil, wrapErr(err, "failed to list ratings of product %s", productID)
	}
	return ratings, nil
}
