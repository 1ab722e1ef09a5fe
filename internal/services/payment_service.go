package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/pkg/payment"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentIntentInput is in major units. Blank customer fields fall back to
// the caller's profile.
type PaymentIntentInput struct {
	Amount    decimal.Decimal `json:"amount"`
	Email     string          `json:"email" validate:"omitempty,email"`
	FirstName string          `json:"firstName" validate:"omitempty,max=100"`
	LastName  string          `json:"lastName" validate:"omitempty,max=100"`
}

type PaymentService struct {
	provider payment.Provider
	currency string
	log      *zap.Logger
}

func NewPaymentService(provider payment.Provider, currency string, log *zap.Logger) *PaymentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentService{provider: provider, currency: currency, log: log}
}

// CreateIntent asks the provider for a payment intent.
func (s *PaymentService) CreateIntent(ctx context.Context, user *models.User, in PaymentIntentInput) (*payment.Intent, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Invalid("amount", "must be greater than 0")
	}
	if user != nil {
		if in.Email == "" {
			in.Email = user.Email
		}
		if in.FirstName == "" {
			in.FirstName = user.FirstName
		}
		if in.LastName == "" {
			in.LastName = user.LastName
		}
	}

	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		Amount:    in.Amount,
		Currency:  s.currency,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		var declined *payment.Error
		if errors.As(err, &declined) {
			s.log.Warn("Payment provider rejected intent",
				zap.String("amount", in.Amount.String()),
				zap.String("type", declined.Type),
				zap.String("code", declined.Code))
			return nil, fmt.Errorf("create payment intent: %s: %w", declined.Message, apperr.ErrUpstreamPayment)
		}
		s.log.Error("Payment provider unavailable", zap.String("amount", in.Amount.String()), zap.Error(err))
		return nil, fmt.Errorf("create payment intent: %w", apperr.ErrUpstreamPayment)
	}
	s.log.Info("Payment intent created", zap.String("intent_id", intent.ID))
	return intent, nil
}
