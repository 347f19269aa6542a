package checkout

import (
	"context"
	"fmt"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"

	"go.uber.org/zap"
)

// API is the slice of the storefront API the submitter needs.
type API interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (string, error)
}

// Submitter is the client-side checkout gate: validate the form, send the
// cart snapshot once, clear the cart only on success. There is no retry; a
// failure leaves the cart exactly as it was.
type Submitter struct {
	api    API
	cart   *cart.Cart
	logger *zap.Logger
}

// NewSubmitter creates a checkout submitter.
func NewSubmitter(api API, c *cart.Cart, logger *zap.Logger) *Submitter {
	return &Submitter{api: api, cart: c, logger: logger}
}

// Submit validates form and posts the checkout. The returned message is the
// server's raw response body; on failure the raw error is returned and the
// cart is untouched.
func (s *Submitter) Submit(ctx context.Context, form Form) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	req := &models.CheckoutRequest{
		UserData:  form.UserData(),
		CartItems: s.cart.Items(),
	}

	msg, err := s.api.Checkout(ctx, req)
	if err != nil {
		s.logger.Warn("Checkout failed", zap.Error(err))
		return "", fmt.Errorf("checkout failed: %w", err)
	}

	s.cart.Clear(ctx)
	s.logger.Info("Checkout succeeded", zap.Int("items", len(req.CartItems)))
	return msg, nil
}
