package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peasmarket/storefront/internal/cart"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

// ShippingDetails is the address block submitted with a checkout.
type ShippingDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Confirmation is returned for an accepted order.
type Confirmation struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// Service accepts checkout submissions. Orders are acknowledged and logged
// but not persisted; there is no order book behind this storefront.
type Service struct {
	logg *logger.Logger
}

func NewService(logg *logger.Logger) *Service {
	return &Service{logg: logg}
}

// Place validates the submission and mints an order id. An empty cart is
// rejected before any id is issued.
func (s *Service) Place(ctx context.Context, shipping ShippingDetails, items []cart.LineItem) (Confirmation, error) {
	if len(items) == 0 {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "Your cart is empty! Please add products before placing an order.")
	}
	for _, li := range items {
		if li.Quantity < 1 {
			return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid quantity for product %d", li.ProductID))
		}
	}

	// Ids must stay unique under simultaneous submissions.
	orderID := "ORD-" + uuid.NewString()

	if s.logg != nil {
		summary := make([]string, 0, len(items))
		for _, li := range items {
			summary = append(summary, fmt.Sprintf("%s (x%d)", li.Name, li.Quantity))
		}
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":  orderID,
			"customer":  shipping.Name,
			"city":      shipping.City,
			"items":     summary,
			"num_items": len(items),
		})
		s.logg.Info(logCtx, "checkout.submitted")
	}

	return Confirmation{
		Message: "Order placed successfully!",
		OrderID: orderID,
	}, nil
}
