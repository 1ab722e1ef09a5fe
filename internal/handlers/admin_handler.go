package handlers

import (
	"strconv"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler covers admin sign-in, user management and the dashboard.
type AdminHandler struct {
	auth      *services.AuthService
	users     *services.UserService
	analytics *services.AnalyticsService
}

func NewAdminHandler(auth *services.AuthService, users *services.UserService, analytics *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{auth: auth, users: users, analytics: analytics}
}

// RegisterRoutes guards every route but login and first-admin per route, so
// the public ones never pass through the admin check.
func (h *AdminHandler) RegisterRoutes(api fiber.Router, g Guards) {
	admin := api.Group("/admin")
	admin.Post("/login", h.HandleLogin)
	admin.Post("/first-admin", h.HandleCreateFirstAdmin)

	admin.Get("/admins", g.Auth, g.Admin, h.HandleListAdmins)
	admin.Post("/admins", g.Auth, g.Admin, h.HandleCreateAdmin)
	admin.Delete("/admins/:id", g.Auth, g.Admin, h.HandleDeleteAdmin)

	admin.Get("/customers", g.Auth, g.Admin, h.HandleListCustomers)
	admin.Post("/customers", g.Auth, g.Admin, h.HandleCreateCustomer)
	admin.Get("/customers/:id", g.Auth, g.Admin, h.HandleGetCustomer)
	admin.Put("/customers/:id", g.Auth, g.Admin, h.HandleUpdateCustomer)
	admin.Delete("/customers/:id", g.Auth, g.Admin, h.HandleDeleteCustomer)
	admin.Put("/customers/:id/block", g.Auth, g.Admin, h.HandleToggleBlock)

	admin.Get("/analytics/summary", g.Auth, g.Admin, h.HandleSummary)
	admin.Get("/analytics/sales", g.Auth, g.Admin, h.HandleSales)
	admin.Get("/analytics/top-products", g.Auth, g.Admin, h.HandleTopProducts)
}

func (h *AdminHandler) HandleLogin(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	token, user, err := h.auth.AdminLogin(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "login success", "token": token, "user": user})
}

func (h *AdminHandler) HandleCreateFirstAdmin(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.users.CreateFirstAdmin(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *AdminHandler) HandleListAdmins(c *fiber.Ctx) error {
	admins, err := h.users.ListAdmins(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(admins)
}

func (h *AdminHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.users.CreateAdmin(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *AdminHandler) HandleDeleteAdmin(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteAdmin(c.UserContext(), actor.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("admin deleted successfully"))
}

func (h *AdminHandler) HandleListCustomers(c *fiber.Ctx) error {
	customers, err := h.users.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(customers)
}

func (h *AdminHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	customer, err := h.users.CreateCustomer(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (h *AdminHandler) HandleGetCustomer(c *fiber.Ctx) error {
	customer, err := h.users.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

func (h *AdminHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	var req services.ProfileInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	customer, err := h.users.UpdateCustomer(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

func (h *AdminHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	if err := h.users.DeleteCustomer(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("customer deleted successfully"))
}

func (h *AdminHandler) HandleToggleBlock(c *fiber.Ctx) error {
	customer, err := h.users.ToggleBlock(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

func (h *AdminHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.analytics.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// HandleSales takes ?year=, defaulting to the current year.
func (h *AdminHandler) HandleSales(c *fiber.Ctx) error {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Invalid("year", "must be an integer")
		}
		year = n
	}
	sales, err := h.analytics.Sales(c.UserContext(), year)
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

func (h *AdminHandler) HandleTopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultTopProducts)
	top, err := h.analytics.TopProducts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(top)
}
