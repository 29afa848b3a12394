package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/peasmarket/storefront/internal/orders"
)

const shippingJSON = `{"name":"Asha Gurung","email":"asha@example.com","address":"12 Lakeside Rd","city":"Pokhara","postalCode":"33700","phone":"+977-9800000000"}`

func TestSubmitCheckout(t *testing.T) {
	logg := testLogger()
	handler := SubmitCheckout(orders.NewService(logg), logg)

	t.Run("places an order", func(t *testing.T) {
		body := `{"shippingDetails":` + shippingJSON + `,"cart":[{"id":1,"name":"Bamboo Cutlery Set","price":899,"quantity":2}]}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp struct {
			Message string `json:"message"`
			OrderID string `json:"orderId"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Message != "Order placed successfully!" {
			t.Fatalf("unexpected message %q", resp.Message)
		}
		if !strings.HasPrefix(resp.OrderID, "ORD-") {
			t.Fatalf("unexpected order id %q", resp.OrderID)
		}
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		body := `{"shippingDetails":` + shippingJSON + `,"cart":[]}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp["message"] != "Your cart is empty! Please add products before placing an order." {
			t.Fatalf("unexpected message %q", resp["message"])
		}
	})

	t.Run("rejects missing shipping fields", func(t *testing.T) {
		body := `{"shippingDetails":{"name":"Asha"},"cart":[{"id":1,"name":"x","price":1,"quantity":1}]}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects a zero quantity line", func(t *testing.T) {
		body := `{"shippingDetails":` + shippingJSON + `,"cart":[{"id":1,"name":"x","price":1,"quantity":0}]}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
