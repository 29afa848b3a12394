package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peasmarket/storefront/api/responses"
	"github.com/peasmarket/storefront/internal/catalog"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

// ListProducts returns the full catalog as a bare JSON array.
func ListProducts(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		responses.WriteSuccess(w, repo.List())
	}
}

// GetProduct returns one product by its numeric identifier.
func GetProduct(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := catalog.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found"))
			return
		}

		product, err := repo.FindByID(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
