package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemAddedMessage is returned by AddItem whether or not a row was inserted.
const ItemAddedMessage = "Item added to cart"

// AddCartItemInput carries unit prices; both default from the product.
type AddCartItemInput struct {
	ProductID       string              `json:"productId" validate:"required"`
	Quantity        int                 `json:"quantity" validate:"gte=1"`
	Size            string              `json:"size" validate:"omitempty,max=50"`
	Price           decimal.NullDecimal `json:"price"`
	DiscountedPrice decimal.NullDecimal `json:"discountedPrice"`
}

// UpdateCartItemInput carries the new quantity and optional unit prices.
type UpdateCartItemInput struct {
	Quantity        int                 `json:"quantity" validate:"gte=1"`
	Price           decimal.NullDecimal `json:"price"`
	DiscountedPrice decimal.NullDecimal `json:"discountedPrice"`
}

// CartService handles business logic related to the shopping cart.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, m *metrics.Metrics, log *zap.Logger) *CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{carts: carts, products: products, metrics: m, log: log}
}

// GetCart returns the user's cart with freshly derived totals, creating an
// empty cart on first access.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.ApplyTotals()
	return cart, nil
}

func (s *CartService) cart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{UserID: userID}
	if err := s.carts.Create(ctx, cart); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return s.carts.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	s.log.Debug("Cart created", zap.String("user_id", userID))
	return cart, nil
}

// AddItem puts a product in the cart. A product already in the cart is
// left untouched.
func (s *CartService) AddItem(ctx context.Context, userID string, in AddCartItemInput) (string, error) {
	if err := validateStruct(in); err != nil {
		return "", err
	}
	if err := checkUnitPrices(in.Price, in.DiscountedPrice); err != nil {
		return "", err
	}
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return "", err
	}
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return "", err
	}

	if _, err := s.carts.FindItem(ctx, cart.ID, product.ID); err == nil {
		return ItemAddedMessage, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	unit := product.Price
	if in.Price.Valid {
		unit = in.Price.Decimal
	}
	unitDiscounted := product.EffectivePrice()
	if in.DiscountedPrice.Valid {
		unitDiscounted = in.DiscountedPrice.Decimal
	}
	qty := decimal.NewFromInt(int64(in.Quantity))
	item := &models.CartItem{
		CartID:          cart.ID,
		ProductID:       product.ID,
		UserID:          userID,
		Quantity:        in.Quantity,
		Size:            in.Size,
		Price:           unit.Mul(qty),
		DiscountedPrice: unitDiscounted.Mul(qty),
	}
	if err := s.carts.CreateItem(ctx, item); err != nil {
		// A concurrent add of the same product lost the unique index race.
		if errors.Is(err, apperr.ErrConflict) {
			return ItemAddedMessage, nil
		}
		return "", err
	}
	s.metrics.CartOperation("add")
	return ItemAddedMessage, nil
}

// UpdateItem sets a new quantity and recomputes the line totals.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, in UpdateCartItemInput) (*models.CartItem, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := checkUnitPrices(in.Price, in.DiscountedPrice); err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	unit := in.Price.Decimal
	if !in.Price.Valid {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		unit = product.Price
	}
	unitDiscounted := unit
	if in.DiscountedPrice.Valid {
		unitDiscounted = in.DiscountedPrice.Decimal
	}

	qty := decimal.NewFromInt(int64(in.Quantity))
	item.Quantity = in.Quantity
	item.Price = unit.Mul(qty)
	item.DiscountedPrice = unitDiscounted.Mul(qty)
	if err := s.carts.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.metrics.CartOperation("update")
	return item, nil
}

// RemoveItem deletes one of the user's cart items.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.carts.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.metrics.CartOperation("remove")
	return nil
}

func (s *CartService) ownedItem(ctx context.Context, userID, itemID string) (*models.CartItem, error) {
	item, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		s.log.Warn("Cart item access denied", zap.String("user_id", userID), zap.String("cart_item_id", itemID))
		return nil, fmt.Errorf("cart item %s belongs to another user: %w", itemID, apperr.ErrAuthorization)
	}
	return item, nil
}

func checkUnitPrices(price, discounted decimal.NullDecimal) error {
	verr := apperr.NewValidationError()
	if price.Valid && price.Decimal.IsNegative() {
		verr.Add("price", "must not be negative")
	}
	if discounted.Valid && discounted.Decimal.IsNegative() {
		verr.Add("discountedPrice", "must not be negative")
	}
	return verr.OrNil()
}
