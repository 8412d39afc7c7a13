package controllers

import (
	"net/http"

	"github.com/calmate/storefront/api/middleware"
	"github.com/calmate/storefront/api/responses"
	"github.com/calmate/storefront/internal/autocomplete"
	"github.com/calmate/storefront/pkg/geocode"
	"github.com/calmate/storefront/pkg/logger"
)

// Autocomplete resolves the q query parameter into address suggestions for
// the caller's session. Lookup failures and superseded queries both come
// back as an empty list.
func Autocomplete(svc autocomplete.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		suggestions, err := svc.Suggest(ctx, middleware.SessionIDFromContext(ctx), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if suggestions == nil {
			suggestions = []geocode.Suggestion{}
		}
		responses.WriteSuccess(w, suggestions)
	}
}
