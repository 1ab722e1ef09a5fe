package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) RegisterRoutes(api fiber.Router, g Guards) {
	api.Post("/payment/create-payment-intent", g.Auth, h.HandleCreateIntent)
}

// HandleCreateIntent returns the client secret the card form needs.
func (h *PaymentHandler) HandleCreateIntent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req services.PaymentIntentInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	intent, err := h.service.CreateIntent(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clientSecret": intent.ClientSecret, "paymentIntentId": intent.ID})
}
