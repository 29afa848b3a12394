// Package view projects catalog and cart state into HTML fragments. Every
// function recomputes its output from the state it is handed; nothing here
// retains derived state between calls, so the rendered view can never drift
// from the cart engine.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/peasmarket/storefront/internal/cart"
	"github.com/peasmarket/storefront/internal/catalog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("storefront").Funcs(template.FuncMap{
	"price": FormatPrice,
}).ParseFS(templateFS, "templates/*.tmpl"))

// FormatPrice renders an amount the way the storefront displays money.
func FormatPrice(amount decimal.Decimal) string {
	return "NPR. " + amount.StringFixed(2)
}

// Badge returns the header badge text: the cart's aggregate item count.
func Badge(c cart.Cart) string {
	return strconv.Itoa(c.ItemCount())
}

// Grid renders one tile per product.
func Grid(products []catalog.Product) (template.HTML, error) {
	return render("grid.tmpl", map[string]any{"Products": products})
}

// ErrorBanner renders the display-level error shown when a read path fails.
func ErrorBanner(message string) (template.HTML, error) {
	return render("error_banner.tmpl", map[string]any{"Message": message})
}

// Detail renders a single product's full record with its add-to-cart control.
func Detail(p catalog.Product) (template.HTML, error) {
	return render("detail.tmpl", map[string]any{"Product": p})
}

// DetailNotFound renders the missing-product state with a path back to the grid.
func DetailNotFound() (template.HTML, error) {
	return render("detail_not_found.tmpl", nil)
}

type sidebarRow struct {
	Line     cart.LineItem
	Subtotal string
}

// CartSidebar renders the cart drawer: an empty-state message, or one row per
// line item with quantity controls and the running total. The checkout
// affordance only appears when the cart holds something.
func CartSidebar(c cart.Cart) (template.HTML, error) {
	return render("cart_sidebar.tmpl", map[string]any{
		"Rows":  sidebarRows(c),
		"Empty": c.IsEmpty(),
		"Total": FormatPrice(c.Total()),
		"Badge": Badge(c),
	})
}

// CheckoutSummary renders the order summary: per-line subtotals and the grand
// total. An empty cart renders the blocking empty-state instead.
func CheckoutSummary(c cart.Cart) (template.HTML, error) {
	return render("checkout_summary.tmpl", map[string]any{
		"Rows":  sidebarRows(c),
		"Empty": c.IsEmpty(),
		"Total": FormatPrice(c.Total()),
	})
}

// ShippingForm carries submitted shipping values back into a re-rendered
// checkout form, so a failed submission never blanks what the visitor typed.
type ShippingForm struct {
	Name       string
	Email      string
	Address    string
	City       string
	PostalCode string
	Phone      string
}

// ContactForm carries submitted contact values back into a re-rendered form.
type ContactForm struct {
	Name    string
	Email   string
	Message string
}

// Checkout renders the full checkout body: the shipping form next to the
// order summary. An empty cart replaces the form with the blocking message,
// and an optional banner surfaces submission failures above both. The form
// values are echoed back into the inputs.
func Checkout(c cart.Cart, form ShippingForm, banner template.HTML) (template.HTML, error) {
	summary, err := CheckoutSummary(c)
	if err != nil {
		return "", err
	}
	return render("checkout.tmpl", map[string]any{
		"Empty":   c.IsEmpty(),
		"Summary": summary,
		"Banner":  banner,
		"Form":    form,
	})
}

// Contact renders the contact form, with an optional banner for failures and
// an optional notice for the post-submission acknowledgement. The form values
// are echoed back into the inputs.
func Contact(notice string, form ContactForm, banner template.HTML) (template.HTML, error) {
	return render("contact.tmpl", map[string]any{
		"Notice": notice,
		"Banner": banner,
		"Form":   form,
	})
}

// OrderConfirmation renders the post-checkout acknowledgement.
func OrderConfirmation(message, orderID string) (template.HTML, error) {
	return render("order_confirmation.tmpl", map[string]any{
		"Message": message,
		"OrderID": orderID,
	})
}

// Page wraps a fragment in the shared chrome, badge included.
func Page(title string, badge string, fragment template.HTML) (template.HTML, error) {
	return render("page.tmpl", map[string]any{
		"Title":    title,
		"Badge":    badge,
		"Fragment": fragment,
	})
}

func sidebarRows(c cart.Cart) []sidebarRow {
	rows := make([]sidebarRow, 0, len(c.Items))
	for _, li := range c.Items {
		rows = append(rows, sidebarRow{Line: li, Subtotal: FormatPrice(li.Subtotal())})
	}
	return rows
}

func render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
