package repositories

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// ListRoots returns active root categories with their active children.
	ListRoots(ctx context.Context) ([]models.Category, error)
	ListChildren(ctx context.Context, parentID string) ([]models.Category, error)
	// CountChildren counts every child, active or not.
	CountChildren(ctx context.Context, parentID string) (int64, error)
	Update(ctx context.Context, category *models.Category) error
	// Deactivate flips isActive off for one category. Children are untouched.
	Deactivate(ctx context.Context, id string) error
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return wrapErr(r.db.WithContext(ctx).Create(category).Error, "failed to create category %q", category.Name)
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err, "category with ID %s", id)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) ListRoots(ctx context.Context) ([]models.Category, error) {
	var roots []models.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("name, id")
		}).
		Where("parent_category_id IS NULL AND is_active = ?", true).
		Order("name, id").
		Find(&roots).Error
	if err != nil {
		return nil, wrapErr(err, "failed to list categories")
	}
	return roots, nil
}

func (r *GORMCategoryRepository) ListChildren(ctx context.Context, parentID string) ([]models.Category, error) {
	var children []models.Category
	err := r.db.WithContext(ctx).
		Where("parent_category_id = ? AND is_active = ?", parentID, true).
		Order("name, id").
		Find(&children).Error
	if err != nil {
		return nil, wrapErr(err, "failed to list subcategories of %s", parentID)
	}
	return children, nil
}

func (r *GORMCategoryRepository) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("parent_category_id = ?", parentID).
		Count(&n).Error
	if err != nil {
		return 0, wrapErr(err, "failed to count subcategories of %s", parentID)
	}
	return n, nil
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Omit("Subcategories").Save(category).Error
	return wrapErr(err, "failed to update category %s", category.ID)
}

func (r *GORMCategoryRepository) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return wrapErr(res.Error, "failed to deactivate category %s", id)
	}
	if res.RowsAffected == 0 {
		return notFound("category with ID %s", id)
	}
	return nil
}
