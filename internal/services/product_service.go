package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductQueryParams holds the raw listing query string values.
type ProductQueryParams struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Color       string `json:"color" validate:"omitempty,max=50"`
	Sizes       string `json:"sizes"`
	MinPrice    string `json:"minPrice"`
	MaxPrice    string `json:"maxPrice"`
	Stock       string `json:"stock" validate:"omitempty,oneof=in_stock out_of_stock"`
	Sort        string `json:"sort" validate:"omitempty,oneof=price_low price_high"`
	PageNumber  string `json:"pageNumber"`
	PageSize    string `json:"pageSize"`
}

// ParseProductQuery validates raw parameters. Every offending field is
// reported in one ValidationError; nothing is silently coerced.
func ParseProductQuery(p ProductQueryParams) (models.ProductQuery, error) {
	verr := apperr.NewValidationError()
	if err := validateStruct(p); err != nil {
		var fields *apperr.ValidationError
		if !errors.As(err, &fields) {
			return models.ProductQuery{}, err
		}
		for k, v := range fields.Fields {
			verr.Add(k, v)
		}
	}

	q := models.ProductQuery{
		Category:    strings.TrimSpace(p.Category),
		Subcategory: strings.TrimSpace(p.Subcategory),
		Color:       strings.TrimSpace(p.Color),
		Stock:       models.StockFilter(p.Stock),
		Sort:        models.SortOrder(p.Sort),
		PageNumber:  models.DefaultPageNumber,
		PageSize:    models.DefaultPageSize,
	}

	if p.Sizes != "" {
		for _, s := range strings.Split(p.Sizes, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Sizes = append(q.Sizes, s)
			}
		}
	}

	q.MinPrice = parsePrice(verr, "minPrice", p.MinPrice)
	q.MaxPrice = parsePrice(verr, "maxPrice", p.MaxPrice)
	switch {
	case p.MinPrice != "" && p.MaxPrice == "":
		verr.Add("maxPrice", "is required when minPrice is set")
	case p.MinPrice == "" && p.MaxPrice != "":
		verr.Add("minPrice", "is required when maxPrice is set")
	case q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice):
		verr.Add("minPrice", "must not exceed maxPrice")
	}

	if n, ok := parsePositiveInt(verr, "pageNumber", p.PageNumber); ok {
		q.PageNumber = n
	}
	if n, ok := parsePositiveInt(verr, "pageSize", p.PageSize); ok {
		if n > models.MaxPageSize {
			verr.Add("pageSize", fmt.Sprintf("must be at most %d", models.MaxPageSize))
		} else {
			q.PageSize = n
		}
	}
	if q.PageNumber-1 > models.MaxOffset/q.PageSize {
		verr.Add("pageNumber", "is out of range")
	}

	if err := verr.OrNil(); err != nil {
		return models.ProductQuery{}, err
	}
	return q, nil
}

func parsePrice(verr *apperr.ValidationError, field, raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		verr.Add(field, "must be a number")
		return nil
	}
	if d.IsNegative() {
		verr.Add(field, "must not be negative")
		return nil
	}
	return &d
}

func parsePositiveInt(verr *apperr.ValidationError, field, raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		verr.Add(field, "must be an integer")
		return 0, false
	}
	if n < 1 {
		verr.Add(field, "must be at least 1")
		return 0, false
	}
	return n, true
}

// ProductInput is the create/update request body.
type ProductInput struct {
	Name            string              `json:"name" validate:"required,min=2,max=200"`
	Description     string              `json:"description" validate:"omitempty,max=5000"`
	Price           decimal.Decimal     `json:"price"`
	DiscountedPrice decimal.NullDecimal `json:"discountedPrice"`
	Category        string              `json:"category" validate:"required"`
	Subcategory     *string             `json:"subcategory"`
	Images          []string            `json:"images" validate:"omitempty,dive,required,max=1000"`
	Sizes           []string            `json:"sizes" validate:"omitempty,dive,max=50"`
	Colors          []string            `json:"colors" validate:"omitempty,dive,max=50"`
	Stock           int                 `json:"stock" validate:"gte=0"`
	IsActive        *bool               `json:"isActive"`
	Featured        bool                `json:"featured"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, m *metrics.Metrics, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{repo: repo, categories: categories, metrics: m, log: log}
}

// List runs the filter pipeline and wraps the page with its totals.
func (s *ProductService) List(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	start := time.Now()
	products, total, err := s.repo.Find(ctx, q)
	s.metrics.ObserveProductQuery(time.Since(start))
	if err != nil {
		return nil, err
	}
	page := models.NewProductPage(products, q, total)
	return &page, nil
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	if err := s.apply(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("Product created", zap.String("product_id", product.ID))
	return product, nil
}

// CreateBatch validates every product first and then stores all or none.
func (s *ProductService) CreateBatch(ctx context.Context, inputs []ProductInput) ([]models.Product, error) {
	if len(inputs) == 0 {
		return nil, apperr.Invalid("products", "must contain at least one product")
	}
	products := make([]models.Product, len(inputs))
	for i, in := range inputs {
		products[i].IsActive = true
		if err := s.apply(ctx, &products[i], in); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
	}
	if err := s.repo.CreateBatch(ctx, products); err != nil {
		return nil, err
	}
	s.log.Info("Products created", zap.Int("count", len(products)))
	return products, nil
}

// Update replaces an existing product's fields.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete deletes a product by its ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func (s *ProductService) apply(ctx context.Context, p *models.Product, in ProductInput) error {
	verr := apperr.NewValidationError()
	if err := validateStruct(in); err != nil {
		var fields *apperr.ValidationError
		if !errors.As(err, &fields) {
			return err
		}
		for k, v := range fields.Fields {
			verr.Add(k, v)
		}
	}
	if !in.Price.IsPositive() {
		verr.Add("price", "must be greater than 0")
	}
	// A discounted price above the list price is accepted as is.
	if in.DiscountedPrice.Valid && in.DiscountedPrice.Decimal.IsNegative() {
		verr.Add("discountedPrice", "must not be negative")
	}
	if in.Category != "" {
		if err := s.checkCategories(ctx, in, verr); err != nil {
			return err
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.DiscountedPrice = in.DiscountedPrice
	p.CategoryID = in.Category
	p.SubcategoryID = nil
	if in.Subcategory != nil && *in.Subcategory != "" {
		sub := *in.Subcategory
		p.SubcategoryID = &sub
	}
	p.Images = models.NewImages(in.Images)
	p.Sizes = models.NewSizes(in.Sizes)
	p.Colors = models.NewColors(in.Colors)
	p.Stock = in.Stock
	p.Featured = in.Featured
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}

// checkCategories requires an existing category and, when given, a
// subcategory that is a child of it.
func (s *ProductService) checkCategories(ctx context.Context, in ProductInput, verr *apperr.ValidationError) error {
	if _, err := s.categories.GetByID(ctx, in.Category); err != nil {
		if !IsNotFound(err) {
			return err
		}
		verr.Add("category", "category does not exist")
		return nil
	}
	if in.Subcategory == nil || *in.Subcategory == "" {
		return nil
	}
	sub, err := s.categories.GetByID(ctx, *in.Subcategory)
	if err != nil {
		if !IsNotFound(err) {
			return err
		}
		verr.Add("subcategory", "subcategory does not exist")
		return nil
	}
	if sub.ParentCategoryID == nil || *sub.ParentCategoryID != in.Category {
		verr.Add("subcategory", "subcategory does not belong to category")
	}
	return nil
}
