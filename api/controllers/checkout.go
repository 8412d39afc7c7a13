package controllers

import (
	"net/http"

	"github.com/calmate/storefront/api/middleware"
	"github.com/calmate/storefront/api/responses"
	"github.com/calmate/storefront/api/validators"
	"github.com/calmate/storefront/internal/checkout"
	"github.com/calmate/storefront/pkg/logger"
)

// CheckoutPrefill returns a checkout form seeded from the buyer's remembered
// profile. The email always reflects the authenticated account.
func CheckoutPrefill(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		form, err := svc.Prefill(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if email := middleware.UserEmailFromContext(ctx); email != "" {
			form.Email = email
		}
		responses.WriteSuccess(w, form)
	}
}

// CheckoutSubmit validates the posted form and places the order. Field-level
// failures come back as validation details; an accepted order responds with
// the confirmation redirect.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var form checkout.Submission
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		confirmation, err := svc.Submit(ctx, checkout.SubmitInput{
			SessionID:   middleware.SessionIDFromContext(ctx),
			UserID:      middleware.UserIDFromContext(ctx),
			AccessToken: middleware.AccessTokenFromContext(ctx),
			Form:        form,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
