package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peasmarket/storefront/internal/cart"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
)

func TestPlaceRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	_, err := svc.Place(context.Background(), ShippingDetails{Name: "Asha"}, nil)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeEmptyCart, typed.Code())
	assert.Equal(t, "Your cart is empty! Please add products before placing an order.", typed.Message())
}

func TestPlaceMintsUniqueOrderIDs(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	items := []cart.LineItem{{ProductID: 1, Name: "Bamboo Cutlery Set", Price: decimal.NewFromInt(899), Quantity: 2}}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		conf, err := svc.Place(context.Background(), ShippingDetails{Name: "Asha"}, items)
		require.NoError(t, err)
		assert.Equal(t, "Order placed successfully!", conf.Message)
		assert.True(t, len(conf.OrderID) > 4 && conf.OrderID[:4] == "ORD-", "unexpected order id %q", conf.OrderID)
		assert.False(t, seen[conf.OrderID], "order id %q repeated", conf.OrderID)
		seen[conf.OrderID] = true
	}
}

func TestPlaceRejectsInvalidQuantities(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	items := []cart.LineItem{{ProductID: 1, Name: "x", Price: decimal.NewFromInt(1), Quantity: 0}}
	_, err := svc.Place(context.Background(), ShippingDetails{}, items)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
