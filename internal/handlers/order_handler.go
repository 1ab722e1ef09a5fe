package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the customer and admin order routes.
func (h *OrderHandler) RegisterRoutes(api fiber.Router, g Guards) {
	orderRoutes := api.Group("/orders", g.Auth)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleOrderHistory)
	orderRoutes.Get("/user", h.HandleOrderHistory)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)

	admin := api.Group("/admin/orders", g.Auth, g.Admin)
	admin.Get("/", h.HandleListAll)
	admin.Put("/:id/confirmed", h.transition(models.OrderConfirmed))
	admin.Put("/:id/ship", h.transition(models.OrderShipped))
	admin.Put("/:id/out-for-delivery", h.transition(models.OrderOutForDelivery))
	admin.Put("/:id/deliver", h.transition(models.OrderDelivered))
	admin.Put("/:id/cancel", h.transition(models.OrderCancelled))
	admin.Delete("/:id", h.HandleDelete)
}

// HandleCreateOrder places an order from the caller's cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.CreateOrderInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.service.CreateOrder(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) HandleOrderHistory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	orders, err := h.service.History(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

func (h *OrderHandler) HandleListAll(c *fiber.Ctx) error {
	orders, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) transition(target models.OrderStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := h.service.Transition(c.UserContext(), c.Params("id"), target)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("order deleted successfully"))
}
