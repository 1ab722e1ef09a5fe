package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the caller's profile and saved addresses.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(api fiber.Router, g Guards) {
	users := api.Group("/users", g.Auth)
	users.Get("/profile", h.HandleGetProfile)
	users.Put("/profile", h.HandleUpdateProfile)
	users.Get("/addresses", h.HandleListAddresses)
	users.Post("/addresses", h.HandleAddAddress)
	users.Put("/addresses/:id", h.HandleUpdateAddress)
	users.Delete("/addresses/:id", h.HandleDeleteAddress)
}

func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.ProfileInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.service.UpdateProfile(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *UserHandler) HandleListAddresses(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	addresses, err := h.service.ListAddresses(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(addresses)
}

func (h *UserHandler) HandleAddAddress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.AddressInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	address, err := h.service.AddAddress(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

func (h *UserHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.AddressInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	address, err := h.service.UpdateAddress(c.UserContext(), user.ID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(address)
}

func (h *UserHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAddress(c.UserContext(), user.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("address deleted successfully"))
}
