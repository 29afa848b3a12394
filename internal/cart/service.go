package cart

import (
	"context"
	"fmt"

	"github.com/peasmarket/storefront/internal/catalog"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

type productResolver interface {
	FindByID(ctx context.Context, id int64) (catalog.Product, error)
}

// Service is the cart mutation and query API. Every mutation loads the
// current snapshot, applies the change, and immediately persists the whole
// cart back; nothing is deferred or batched.
type Service struct {
	store    SnapshotStore
	resolver productResolver
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(store SnapshotStore, resolver productResolver, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	return &Service{store: store, resolver: resolver, logg: logg}, nil
}

// Get loads the session's current cart.
func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// Add resolves the product and adds it to the cart. If resolution fails the
// cart is not touched.
func (s *Service) Add(ctx context.Context, sessionID string, productID int64) (Cart, error) {
	product, err := s.resolver.FindByID(ctx, productID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return Cart{}, typed
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Could not find product details")
	}

	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.AddProduct(product)
		return nil
	})
}

// SetQuantity sets a line's quantity directly. Non-positive values are
// rejected and nothing is persisted.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.SetQuantity(productID, quantity)
	})
}

// Adjust applies a signed quantity delta, removing the line when the result
// drops to zero or below.
func (s *Service) Adjust(ctx context.Context, sessionID string, productID int64, delta int) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.Adjust(productID, delta)
	})
}

// Remove drops a line unconditionally.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Remove(productID)
		return nil
	})
}

// Clear empties the cart, used after a successful checkout.
func (s *Service) Clear(ctx context.Context, sessionID string) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(c *Cart) error) (Cart, error) {
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	if err := fn(&current); err != nil {
		return current, err
	}

	if err := s.store.Save(ctx, sessionID, current); err != nil {
		return Cart{}, err
	}
	return current, nil
}
