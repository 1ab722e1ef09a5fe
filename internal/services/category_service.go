package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

// CategoryInput is the create/update request body. A missing isActive means
// true on create and unchanged on update.
type CategoryInput struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Description    string  `json:"description" validate:"omitempty,max=500"`
	ParentCategory *string `json:"parentCategory" validate:"omitempty,uuid"`
	IsActive       *bool   `json:"isActive"`
}

// CategoryService manages the two-level category tree.
type CategoryService struct {
	repo repositories.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo repositories.CategoryRepository, log *zap.Logger) *CategoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryService{repo: repo, log: log}
}

// ListRoots returns active root categories with their active subcategories.
func (s *CategoryService) ListRoots(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListRoots(ctx)
}

// ListSubcategories returns the active children of an existing category.
func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID string) ([]models.Category, error) {
	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListChildren(ctx, categoryID)
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	category := &models.Category{IsActive: true}
	if err := s.apply(ctx, category, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.log.Info("Category created", zap.String("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ParentCategory != nil && *in.ParentCategory == id {
		return nil, apperr.Invalid("parentCategory", "a category cannot be its own parent")
	}
	if err := s.apply(ctx, category, in); err != nil {
		return nil, err
	}
	if category.ParentCategoryID != nil {
		// A category that already has children must stay a root.
		children, err := s.repo.CountChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		if children > 0 {
			return nil, apperr.Invalid("parentCategory", "a category with subcategories cannot become a subcategory")
		}
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete is a soft delete of this category only.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info("Category deactivated", zap.String("category_id", id))
	return nil
}

func (s *CategoryService) apply(ctx context.Context, category *models.Category, in CategoryInput) error {
	category.Name = strings.TrimSpace(in.Name)
	category.Description = in.Description
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	category.ParentCategoryID = nil
	if in.ParentCategory != nil && *in.ParentCategory != "" {
		parent, err := s.repo.GetByID(ctx, *in.ParentCategory)
		if err != nil {
			if IsNotFound(err) {
				return apperr.Invalid("parentCategory", "parent category does not exist")
			}
			return err
		}
		if !parent.IsRoot() {
			return apperr.Invalid("parentCategory", fmt.Sprintf("category %s is itself a subcategory", parent.ID))
		}
		category.ParentCategoryID = &parent.ID
	}
	return nil
}
