package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/peasmarket/storefront/internal/catalog"
	"github.com/peasmarket/storefront/pkg/logger"
)

const seedJSON = `[
  {"id": 1, "name": "Bamboo Cutlery Set", "price": 899, "image": "/static/images/bamboo.jpg", "description": "Reusable cutlery"},
  {"id": 2, "name": "Solar-Powered Phone Charger", "price": 2499.5, "image": "/static/images/solar.jpg", "description": "Compact panel"}
]`

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testRepo(t *testing.T) *catalog.Repository {
	t.Helper()
	repo, err := catalog.NewRepositoryFromJSON([]byte(seedJSON))
	if err != nil {
		t.Fatalf("building repository: %v", err)
	}
	return repo
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestListProducts(t *testing.T) {
	rec := httptest.NewRecorder()
	ListProducts(testRepo(t), testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var products []catalog.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("response must be a bare array: %v (%s)", err, rec.Body.String())
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Bamboo Cutlery Set" {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
}

func TestGetProduct(t *testing.T) {
	handler := GetProduct(testRepo(t), testLogger())

	t.Run("found", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/2", nil), "id", "2")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var product catalog.Product
		if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if product.ID != 2 || product.Price.String() != "2499.5" {
			t.Fatalf("unexpected product: %+v", product)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/99", nil), "id", "99")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["message"] != "Product not found" {
			t.Fatalf("unexpected message %q", body["message"])
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/banana", nil), "id", "banana")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
