package responses

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"

	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

// ErrorBody is the wire shape for every non-2xx JSON response.
type ErrorBody struct {
	Message string `json:"message"`
}

func WriteSuccess(w http.ResponseWriter, payload any) {
	WriteSuccessStatus(w, http.StatusOK, payload)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, payload)
}

// WriteError maps an error to its HTTP status and a {"message": ...} body.
// Codes with user-facing semantics surface their own message; everything
// else falls back to the generic public message so internals never leak.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

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

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, ErrorBody{Message: msg})
}

// WriteHTML emits a rendered page. Render failures degrade to a plain 500
// so a broken template never produces a half-written body.
func WriteHTML(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, page template.HTML, err error) {
	WriteHTMLStatus(ctx, logg, w, http.StatusOK, page, err)
}

func WriteHTMLStatus(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, status int, page template.HTML, err error) {
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "page.render_failed", err)
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(page)); err != nil && logg != nil {
		logg.Warn(ctx, "page.write_failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
