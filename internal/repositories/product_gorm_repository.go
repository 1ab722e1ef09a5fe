package repositories

import (
	"context"
	"strings"

	"storefront/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// effectivePriceSQL is the discounted price when present and positive, else the list price.
const effectivePriceSQL = "CASE WHEN products.discounted_price IS NOT NULL AND products.discounted_price > 0 " +
	"THEN products.discounted_price ELSE products.price END"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// Find runs the page query and the count query concurrently.
func (r *GORMProductRepository) Find(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	var (
		products []models.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page := withChildren(orderBy(r.filtered(gctx, q), q.Sort))
		return page.Offset(q.Offset()).Limit(q.PageSize).Find(&products).Error
	})
	g.Go(func() error {
		return r.filtered(gctx, q).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, wrapErr(err, "failed to query products")
	}
	return products, total, nil
}

// filtered starts a fresh session with every supplied filter ANDed.
func (r *GORMProductRepository) filtered(ctx context.Context, q models.ProductQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Product{})

	if q.Category != "" {
		db = db.Where("products.category_id = ?", q.Category)
	}
	if q.Subcategory != "" {
		db = db.Where("products.subcategory_id = ?", q.Subcategory)
	}
	if q.Color != "" {
		db = db.Where(
			"EXISTS (SELECT 1 FROM product_colors pc WHERE pc.product_id = products.id AND LOWER(pc.value) LIKE ? ESCAPE '\\')",
			"%"+escapeLike(strings.ToLower(q.Color))+"%",
		)
	}
	if len(q.Sizes) > 0 {
		db = db.Where(
			"EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = products.id AND ps.value IN ?)",
			q.Sizes,
		)
	}
	if q.MinPrice != nil && q.MaxPrice != nil {
		// Bound as floats so SQLite compares numerically against the CASE expression.
		db = db.Where(effectivePriceSQL+" BETWEEN ? AND ?",
			q.MinPrice.InexactFloat64(), q.MaxPrice.InexactFloat64())
	}
	switch q.Stock {
	case models.StockInStock:
		db = db.Where("products.stock > 0")
	case models.StockOutOfStock:
		db = db.Where("products.stock = 0")
	}
	return db
}

// orderBy applies the requested sort. Creation time then id break ties so
// pages are stable.
func orderBy(db *gorm.DB, sort models.SortOrder) *gorm.DB {
	switch sort {
	case models.SortPriceLow:
		db = db.Order(effectivePriceSQL + " ASC")
	case models.SortPriceHigh:
		db = db.Order(effectivePriceSQL + " DESC")
	}
	return db.Order("products.created_at ASC").Order("products.id ASC")
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// escapeLike makes the LIKE metacharacters literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetByID retrieves a single product with its sizes, colors and images.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := withChildren(r.db.WithContext(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err, "product with ID %s", id)
	}
	return &product, nil
}

// Create inserts the product and its child rows.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	return wrapErr(r.db.WithContext(ctx).Create(product).Error, "failed to create product %q", product.Name)
}

// CreateBatch inserts every product or none.
func (r *GORMProductRepository) CreateBatch(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return wrapErr(err, "failed to create product %q", products[i].Name)
			}
		}
		return nil
	})
}

// Update saves the product columns and replaces its sizes, colors and images.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, product.ID); err != nil {
			return err
		}
		res := tx.Omit(clause.Associations).Save(product)
		if res.Error != nil {
			return wrapErr(res.Error, "failed to update product %s", product.ID)
		}

		for i := range product.Sizes {
			product.Sizes[i].ID = 0
			product.Sizes[i].ProductID = product.ID
		}
		for i := range product.Colors {
			product.Colors[i].ID = 0
			product.Colors[i].ProductID = product.ID
		}
		for i := range product.Images {
			product.Images[i].ID = 0
			product.Images[i].ProductID = product.ID
		}
		if len(product.Sizes) > 0 {
			if err := tx.Create(&product.Sizes).Error; err != nil {
				return wrapErr(err, "failed to save sizes of product %s", product.ID)
			}
		}
		if len(product.Colors) > 0 {
			if err := tx.Create(&product.Colors).Error; err != nil {
				return wrapErr(err, "failed to save colors of product %s", product.ID)
			}
		}
		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return wrapErr(err, "failed to save images of product %s", product.ID)
			}
		}
		return nil
	})
}

// Delete hard-deletes the product and every row that points at it, except
// order items, which are snapshots.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return wrapErr(err, "failed to delete cart items of product %s", id)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
			return wrapErr(err, "failed to delete wishlist entries of product %s", id)
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return wrapErr(res.Error, "failed to delete product %s", id)
		}
		if res.RowsAffected == 0 {
			return notFound("product with ID %s", id)
		}
		return nil
	})
}

func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, wrapErr(err, "failed to count products")
	}
	return n, nil
}

func deleteChildren(tx *gorm.DB, productID string) error {
	for _, child := range []any{&models.ProductSize{}, &models.ProductColor{}, &models.ProductImage{}} {
		if err := tx.Where("product_id = ?", productID).Delete(child).Error; err != nil {
			return wrapErr(err, "failed to delete child rows of product %s", productID)
		}
	}
	return nil
}
