// Package checkout submits the storefront's contact and checkout forms to
// the JSON API. Submissions are never retried automatically; a failure leaves
// the caller's input intact so the visitor can re-initiate.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/peasmarket/storefront/internal/cart"
	"github.com/peasmarket/storefront/internal/orders"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

// Client posts form submissions to the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logg       *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, logg *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
	}
}

// Result carries a successful submission's acknowledgment.
type Result struct {
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

type checkoutPayload struct {
	ShippingDetails orders.ShippingDetails `json:"shippingDetails"`
	Cart            []cart.LineItem        `json:"cart"`
}

// SubmitContact posts the contact form. The fields are passed through
// untouched; on failure the caller still holds them for a retry.
func (c *Client) SubmitContact(ctx context.Context, msg ContactFields) (Result, error) {
	return c.post(ctx, "/api/contact", msg)
}

// ContactFields is the contact form payload.
type ContactFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitCheckout posts the checkout form together with the cart snapshot.
// An empty cart is rejected locally; no network call is made.
func (c *Client) SubmitCheckout(ctx context.Context, shipping orders.ShippingDetails, current cart.Cart) (Result, error) {
	if current.IsEmpty() {
		return Result{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "Your cart is empty! Please add products before placing an order.")
	}
	return c.post(ctx, "/api/checkout", checkoutPayload{
		ShippingDetails: shipping,
		Cart:            current.Items,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building submission request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "submission.transport_failed", err)
		}
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Failed to reach the server. Please try again.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, pkgerrors.New(pkgerrors.CodeDependency, errorMessage(resp))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding submission response")
	}
	return result, nil
}

func errorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return "Submission failed."
}
