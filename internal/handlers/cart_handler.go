package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the caller's cart and its items.
type CartHandler struct {
	service *services.CartService
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) RegisterRoutes(api fiber.Router, g Guards) {
	api.Get("/cart", g.Auth, h.HandleGetCart)

	items := api.Group("/cart_items", g.Auth)
	items.Post("/", h.HandleAddItem)
	items.Put("/:id", h.HandleUpdateItem)
	items.Delete("/:id", h.HandleRemoveItem)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	cart, err := h.service.GetCart(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.AddCartItemInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := h.service.AddItem(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(message(msg))
}

func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.UpdateCartItemInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.UpdateItem(c.UserContext(), user.ID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveItem(c.UserContext(), user.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("cart item removed successfully"))
}
