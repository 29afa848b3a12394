package controllers

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/peasmarket/storefront/api/middleware"
	"github.com/peasmarket/storefront/api/responses"
	"github.com/peasmarket/storefront/api/validators"
	cartsvc "github.com/peasmarket/storefront/internal/cart"
	"github.com/peasmarket/storefront/internal/catalog"
	checkoutclient "github.com/peasmarket/storefront/internal/checkout"
	"github.com/peasmarket/storefront/internal/orders"
	"github.com/peasmarket/storefront/internal/view"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

// Home renders the product grid, narrowed by the q, min_price, max_price
// and sort query parameters.
func Home(client *catalog.Client, carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		minPrice, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Marketplace", err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Marketplace", err)
			return
		}

		products, err := client.ListAll(ctx)
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Marketplace", err)
			return
		}

		matched := catalog.Browse(products, catalog.BrowseQuery{
			Search:   r.URL.Query().Get("q"),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Sort:     catalog.ParseSortCriterion(r.URL.Query().Get("sort")),
		})

		fragment, err := view.Grid(matched)
		page, err2 := wrapPage("Marketplace", cartBadge(r, carts), fragment, err)
		responses.WriteHTML(ctx, logg, w, page, err2)
	}
}

// ProductDetailPage renders one product, or the missing-product state.
func ProductDetailPage(client *catalog.Client, carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		badge := cartBadge(r, carts)

		id, parseErr := catalog.ParseID(chi.URLParam(r, "id"))
		var (
			product catalog.Product
			err     error
		)
		if parseErr != nil {
			err = pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		} else {
			product, err = client.FindByID(ctx, id)
		}

		if err != nil {
			fragment, rerr := view.DetailNotFound()
			page, rerr2 := wrapPage("Product not found", badge, fragment, rerr)
			responses.WriteHTMLStatus(ctx, logg, w, http.StatusNotFound, page, rerr2)
			return
		}

		fragment, rerr := view.Detail(product)
		page, rerr2 := wrapPage(product.Name, badge, fragment, rerr)
		responses.WriteHTML(ctx, logg, w, page, rerr2)
	}
}

// CartPage renders the cart drawer as a full page.
func CartPage(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		current, err := carts.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Your Cart", err)
			return
		}

		fragment, rerr := view.CartSidebar(current)
		page, rerr2 := wrapPage("Your Cart", view.Badge(current), fragment, rerr)
		responses.WriteHTML(ctx, logg, w, page, rerr2)
	}
}

// CartBadge returns the header badge count as plain text.
func CartBadge(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		current, err := carts.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(view.Badge(current)))
	}
}

// AddToCart adds one unit of a product to the session cart.
func AddToCart(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := catalog.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Your Cart", err)
			return
		}

		if _, err := carts.Add(ctx, middleware.SessionIDFromContext(ctx), id); err != nil {
			writeBannerPage(w, r, carts, logg, "Your Cart", err)
			return
		}

		redirectBack(w, r, "/cart")
	}
}

// UpdateQuantity sets a line's quantity from the posted form. A rejected
// quantity leaves the cart as it was and simply re-renders it, mirroring
// the input resetting to the stored value.
func UpdateQuantity(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := catalog.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			redirectBack(w, r, "/cart")
			return
		}

		// A blanked-out input is a rejected edit, not a request for some
		// default quantity. Leave the stored line alone.
		if strings.TrimSpace(r.PostFormValue("quantity")) == "" {
			redirectBack(w, r, "/cart")
			return
		}

		quantity, err := validators.ParseFormInt(r, "quantity", 1)
		if err != nil {
			redirectBack(w, r, "/cart")
			return
		}

		if _, err := carts.SetQuantity(ctx, middleware.SessionIDFromContext(ctx), id, quantity); err != nil {
			if ignorableCartError(err) {
				redirectBack(w, r, "/cart")
				return
			}
			writeBannerPage(w, r, carts, logg, "Your Cart", err)
			return
		}

		redirectBack(w, r, "/cart")
	}
}

// AdjustQuantity applies a +1/-1 delta. The line disappears once the
// adjusted quantity reaches zero.
func AdjustQuantity(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := catalog.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			redirectBack(w, r, "/cart")
			return
		}

		delta, err := validators.ParseFormInt(r, "delta", 0)
		if err != nil || delta == 0 {
			redirectBack(w, r, "/cart")
			return
		}

		if _, err := carts.Adjust(ctx, middleware.SessionIDFromContext(ctx), id, delta); err != nil {
			if ignorableCartError(err) {
				redirectBack(w, r, "/cart")
				return
			}
			writeBannerPage(w, r, carts, logg, "Your Cart", err)
			return
		}

		redirectBack(w, r, "/cart")
	}
}

// RemoveFromCart drops a line regardless of its quantity.
func RemoveFromCart(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := catalog.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			redirectBack(w, r, "/cart")
			return
		}

		if _, err := carts.Remove(ctx, middleware.SessionIDFromContext(ctx), id); err != nil {
			writeBannerPage(w, r, carts, logg, "Your Cart", err)
			return
		}

		redirectBack(w, r, "/cart")
	}
}

// CheckoutPage renders the shipping form next to the order summary.
func CheckoutPage(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		current, err := carts.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Checkout", err)
			return
		}

		fragment, rerr := view.Checkout(current, view.ShippingForm{}, "")
		page, rerr2 := wrapPage("Checkout", view.Badge(current), fragment, rerr)
		responses.WriteHTML(ctx, logg, w, page, rerr2)
	}
}

// PlaceOrder submits the checkout form through the API and, on success,
// clears the session cart and renders the confirmation.
func PlaceOrder(carts *cartsvc.Service, submit *checkoutclient.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		current, err := carts.Get(ctx, sessionID)
		if err != nil {
			writeBannerPage(w, r, carts, logg, "Checkout", err)
			return
		}

		shipping := orders.ShippingDetails{
			Name:       r.PostFormValue("name"),
			Email:      r.PostFormValue("email"),
			Address:    r.PostFormValue("address"),
			City:       r.PostFormValue("city"),
			PostalCode: r.PostFormValue("postalCode"),
			Phone:      r.PostFormValue("phone"),
		}

		result, err := submit.SubmitCheckout(ctx, shipping, current)
		if err != nil {
			// A failed submission re-renders the form with the typed
			// values intact.
			form := view.ShippingForm{
				Name:       shipping.Name,
				Email:      shipping.Email,
				Address:    shipping.Address,
				City:       shipping.City,
				PostalCode: shipping.PostalCode,
				Phone:      shipping.Phone,
			}
			banner, status := bannerForError(err)
			fragment, rerr := view.Checkout(current, form, banner)
			page, rerr2 := wrapPage("Checkout", view.Badge(current), fragment, rerr)
			responses.WriteHTMLStatus(ctx, logg, w, status, page, rerr2)
			return
		}

		if _, err := carts.Clear(ctx, sessionID); err != nil {
			logg.Error(ctx, "checkout.cart_clear_failed", err)
		}

		fragment, rerr := view.OrderConfirmation(result.Message, result.OrderID)
		page, rerr2 := wrapPage("Order Confirmed", "0", fragment, rerr)
		responses.WriteHTML(ctx, logg, w, page, rerr2)
	}
}

// ContactPage renders the contact form.
func ContactPage(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fragment, rerr := view.Contact("", view.ContactForm{}, "")
		page, rerr2 := wrapPage("Contact", cartBadge(r, carts), fragment, rerr)
		responses.WriteHTML(ctx, logg, w, page, rerr2)
	}
}

// SendContact submits the contact form through the API and re-renders the
// form with the acknowledgement.
func SendContact(carts *cartsvc.Service, submit *checkoutclient.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		badge := cartBadge(r, carts)

		fields := checkoutclient.ContactFields{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Message: r.PostFormValue("message"),
		}

		result, err := submit.SubmitContact(ctx, fields)
		if err != nil {
			// A failed submission re-renders the form with the typed
			// values intact.
			form := view.ContactForm{
				Name:    fields.Name,
				Email:   fields.Email,
				Message: fields.Message,
			}
			banner, status := bannerForError(err)
			fragment, rerr := view.Contact("", form, banner)
			page, rerr2 := wrapPage("Contact", badge, fragment, rerr)
			responses.WriteHTMLStatus(ctx, logg, w, status, page, rerr2)
			return
		}

		fragment, rerr := view.Contact(result.Message, view.ContactForm{}, "")
		page, rerr2 := wrapPage("Contact", badge, fragment, rerr)
		responses.WriteHTML(ctx, logg, w, page, rerr2)
	}
}

// redirectBack returns the browser to the page it posted from, reduced to
// its path so the Referer header can never send anyone off-site.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" {
		target = ref.Path
		if ref.RawQuery != "" {
			target += "?" + ref.RawQuery
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// cartBadge reads the current badge count, falling back to zero so a cart
// storage hiccup never takes a read-only page down with it.
func cartBadge(r *http.Request, carts *cartsvc.Service) string {
	if carts == nil {
		return "0"
	}
	current, err := carts.Get(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		return "0"
	}
	return view.Badge(current)
}

// ignorableCartError reports whether a cart mutation failure should be
// swallowed and the cart simply re-shown, matching how the storefront
// treats an invalid quantity edit.
func ignorableCartError(err error) bool {
	typed := pkgerrors.As(err)
	if typed == nil {
		return false
	}
	return typed.Code() == pkgerrors.CodeValidation || typed.Code() == pkgerrors.CodeNotFound
}

func bannerForError(err error) (template.HTML, int) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeEmptyCart,
		pkgerrors.CodeDependency:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	banner, rerr := view.ErrorBanner(msg)
	if rerr != nil {
		return "", meta.HTTPStatus
	}
	return banner, meta.HTTPStatus
}

func writeBannerPage(w http.ResponseWriter, r *http.Request, carts *cartsvc.Service, logg *logger.Logger, title string, err error) {
	ctx := r.Context()

	if logg != nil {
		dump := pkgerrors.Dump(err)
		lctx := logg.WithFields(ctx, map[string]any{
			"error":      dump.TopMessage,
			"error_code": dump.Code,
		})
		logg.Error(lctx, "page.error", err)
	}

	banner, status := bannerForError(err)
	page, rerr := wrapPage(title, cartBadge(r, carts), banner, nil)
	responses.WriteHTMLStatus(ctx, logg, w, status, page, rerr)
}

func wrapPage(title, badge string, fragment template.HTML, err error) (template.HTML, error) {
	if err != nil {
		return "", err
	}
	return view.Page(title, badge, fragment)
}
