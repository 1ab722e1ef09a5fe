package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(api fiber.Router, g Guards) {
	categories := api.Group("/categories")
	categories.Get("/", h.HandleListRoots)
	categories.Get("/:categoryId/subcategories", h.HandleListSubcategories)
	categories.Post("/", g.Auth, g.Admin, h.HandleCreate)
	categories.Put("/:id", g.Auth, g.Admin, h.HandleUpdate)
	categories.Delete("/:id", g.Auth, g.Admin, h.HandleDelete)
}

func (h *CategoryHandler) HandleListRoots(c *fiber.Ctx) error {
	categories, err := h.service.ListRoots(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleListSubcategories(c *fiber.Ctx) error {
	children, err := h.service.ListSubcategories(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(children)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// HandleDelete deactivates the category; its subcategories stay active.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("category deactivated"))
}
