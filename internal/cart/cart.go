package cart

import (
	"github.com/shopspring/decimal"

	"github.com/peasmarket/storefront/internal/catalog"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
)

// LineItem pairs one product with a quantity. The product fields are copied
// into the line at add time, matching what the snapshot persists.
type LineItem struct {
	ProductID   int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an insertion-ordered sequence of line items. Invariants: at most one
// line per product id, and every quantity is at least 1.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) find(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddProduct increments the matching line's quantity, or appends a new line
// with quantity 1 at the end of the sequence.
func (c *Cart) AddProduct(p catalog.Product) {
	if i := c.find(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Quantity:    1,
	})
}

// SetQuantity sets the line's quantity directly. Values below 1 are rejected
// and the stored quantity is left untouched; direct set never removes a line.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	i := c.find(productID)
	if i < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	c.Items[i].Quantity = quantity
	return nil
}

// Adjust applies a signed delta to the line's quantity. A result of zero or
// below removes the line entirely; this is the decrement-to-zero removal path.
func (c *Cart) Adjust(productID int64, delta int) error {
	i := c.find(productID)
	if i < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	c.Items[i].Quantity += delta
	if c.Items[i].Quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	return nil
}

// Remove drops the line regardless of its quantity. Removing an absent
// product is a no-op.
func (c *Cart) Remove(productID int64) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total sums price times quantity across all lines. Always recomputed from
// the items; there is no cached running total to go stale.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ItemCount sums quantities across all lines, recomputed on every call.
func (c *Cart) ItemCount() int {
	count := 0
	for _, li := range c.Items {
		count += li.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
