package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/peasmarket/storefront/api/responses"
	"github.com/peasmarket/storefront/api/validators"
	"github.com/peasmarket/storefront/internal/cart"
	"github.com/peasmarket/storefront/internal/orders"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

type checkoutRequest struct {
	ShippingDetails shippingDetailsRequest `json:"shippingDetails" validate:"required"`
	Cart            []checkoutLineRequest  `json:"cart" validate:"dive"`
}

type shippingDetailsRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Phone      string `json:"phone"`
}

type checkoutLineRequest struct {
	ID          int64           `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"required"`
}

func (c checkoutRequest) toItems() []cart.LineItem {
	items := make([]cart.LineItem, 0, len(c.Cart))
	for _, line := range c.Cart {
		items = append(items, cart.LineItem{
			ProductID:   line.ID,
			Name:        line.Name,
			Price:       line.Price,
			Image:       line.Image,
			Description: line.Description,
			Quantity:    line.Quantity,
		})
	}
	return items
}

func (c checkoutRequest) toShipping() orders.ShippingDetails {
	return orders.ShippingDetails{
		Name:       c.ShippingDetails.Name,
		Email:      c.ShippingDetails.Email,
		Address:    c.ShippingDetails.Address,
		City:       c.ShippingDetails.City,
		PostalCode: c.ShippingDetails.PostalCode,
		Phone:      c.ShippingDetails.Phone,
	}
}

// SubmitCheckout accepts an order submission and returns its confirmation.
func SubmitCheckout(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Place(r.Context(), payload.toShipping(), payload.toItems())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, confirmation)
	}
}
