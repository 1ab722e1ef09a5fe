package services

import (
	"context"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

type WishlistInput struct {
	ProductID string `json:"productId" validate:"required"`
}

type ReviewInput struct {
	ProductID string `json:"productId" validate:"required"`
	Review    string `json:"review" validate:"required,max=2000"`
}

type RatingInput struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
}

// EngagementService covers wishlists, reviews and ratings.
type EngagementService struct {
	wishlist repositories.WishlistRepository
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
	log      *zap.Logger
}

func NewEngagementService(wishlist repositories.WishlistRepository, reviews repositories.ReviewRepository,
	products repositories.ProductRepository, log *zap.Logger) *EngagementService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EngagementService{wishlist: wishlist, reviews: reviews, products: products, log: log}
}

func (s *EngagementService) Wishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items, err := s.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	return items, nil
}

// AddToWishlist is idempotent and returns the resulting wishlist.
func (s *EngagementService) AddToWishlist(ctx context.Context, userID string, in WishlistInput) ([]models.WishlistItem, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := s.wishlist.Add(ctx, &models.WishlistItem{UserID: userID, ProductID: in.ProductID}); err != nil {
		return nil, err
	}
	return s.Wishlist(ctx, userID)
}

func (s *EngagementService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]models.WishlistItem, error) {
	if err := s.wishlist.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Wishlist(ctx, userID)
}

func (s *EngagementService) CreateReview(ctx context.Context, userID string, in ReviewInput) (*models.Review, error) {
	in.Review = strings.TrimSpace(in.Review)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	review := &models.Review{UserID: userID, ProductID: in.ProductID, Review: in.Review}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *EngagementService) Reviews(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *EngagementService) CreateRating(ctx context.Context, userID string, in RatingInput) (*models.Rating, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	rating := &models.Rating{UserID: userID, ProductID: in.ProductID, Rating: in.Rating}
	if err := s.reviews.CreateRating(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *EngagementService) Ratings(ctx context.Context, productID string) ([]models.Rating, error) {
	if productID == "" {
		return nil, apperr.Invalid("productId", "is required")
	}
	ratings, err := s.reviews.ListRatings(ctx, productID)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	return ratings, nil
}
