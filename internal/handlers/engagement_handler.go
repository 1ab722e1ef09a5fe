package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type EngagementHandler struct {
	service *services.EngagementService
}

func NewEngagementHandler(service *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) RegisterRoutes(api fiber.Router, g Guards) {
	wishlist := api.Group("/wishlist", g.Auth)
	wishlist.Get("/", h.HandleWishlist)
	wishlist.Post("/add", h.HandleAddToWishlist)
	wishlist.Delete("/remove/:productId", h.HandleRemoveFromWishlist)

	api.Post("/reviews", g.Auth, h.HandleCreateReview)
	api.Get("/reviews/product/:productId", h.HandleListReviews)
	api.Post("/ratings", g.Auth, h.HandleCreateRating)
	api.Get("/ratings/product/:productId", h.HandleListRatings)
}

func (h *EngagementHandler) HandleWishlist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.service.Wishlist(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *EngagementHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.WishlistInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	items, err := h.service.AddToWishlist(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Added to wishlist", "wishlist": items})
}

func (h *EngagementHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.service.RemoveFromWishlist(c.UserContext(), user.ID, c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist", "wishlist": items})
}

func (h *EngagementHandler) HandleCreateReview(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.ReviewInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	review, err := h.service.CreateReview(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *EngagementHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.Reviews(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

func (h *EngagementHandler) HandleCreateRating(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.RatingInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	rating, err := h.service.CreateRating(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

func (h *EngagementHandler) HandleListRatings(c *fiber.Ctx) error {
	ratings, err := h.service.Ratings(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(ratings)
}
