package controllers

import (
	"net/http"

	"github.com/peasmarket/storefront/api/responses"
	"github.com/peasmarket/storefront/api/validators"
	"github.com/peasmarket/storefront/internal/contact"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// SubmitContact accepts a contact form submission and acknowledges it.
func SubmitContact(svc *contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := svc.Submit(r.Context(), contact.Message{
			Name:    payload.Name,
			Email:   payload.Email,
			Message: payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": msg})
	}
}
