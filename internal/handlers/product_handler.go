package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(api fiber.Router, g Guards) {
	products := api.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/id/:id", h.HandleGet)
	products.Post("/", g.Auth, g.Admin, h.HandleCreate)
	products.Post("/bulk", g.Auth, g.Admin, h.HandleCreateBatch)
	products.Put("/:id", g.Auth, g.Admin, h.HandleUpdate)
	products.Delete("/:id", g.Auth, g.Admin, h.HandleDelete)
}

// HandleList runs the filter pipeline over the query string.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	q, err := services.ParseProductQuery(services.ProductQueryParams{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Color:       c.Query("color"),
		Sizes:       c.Query("sizes"),
		MinPrice:    c.Query("minPrice"),
		MaxPrice:    c.Query("maxPrice"),
		Stock:       c.Query("stock"),
		Sort:        c.Query("sort"),
		PageNumber:  c.Query("pageNumber"),
		PageSize:    c.Query("pageSize"),
	})
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req services.ProductInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleCreateBatch(c *fiber.Ctx) error {
	var req []services.ProductInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	products, err := h.service.CreateBatch(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(products)
}

func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req services.ProductInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("product deleted successfully"))
}
