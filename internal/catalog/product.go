package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
)

// Product is one catalog record. Records are immutable once loaded; the
// repository owns the backing list and hands out copies.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// ParseID normalizes an identifier arriving as text (URL params, form values)
// into the canonical int64 representation. All comparisons happen on the
// normalized value; nothing downstream compares loosely across types.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}
