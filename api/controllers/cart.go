package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calmate/storefront/api/middleware"
	"github.com/calmate/storefront/api/responses"
	"github.com/calmate/storefront/api/validators"
	"github.com/calmate/storefront/internal/cart"
	"github.com/calmate/storefront/internal/pricing"
	"github.com/calmate/storefront/pkg/enums"
	pkgerrors "github.com/calmate/storefront/pkg/errors"
	"github.com/calmate/storefront/pkg/logger"
	"github.com/calmate/storefront/pkg/metrics"
)

// CartView is the priced cart snapshot every cart endpoint responds with.
type CartView struct {
	Items []cart.Item   `json:"items"`
	Quote pricing.Quote `json:"quote"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the session's cart priced for the requested shipping
// method (metodoEnvio query parameter, home delivery by default).
func GetCart(manager *cart.Manager, policy pricing.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := manager.Get(middleware.SessionIDFromContext(r.Context()))
		view, err := cartView(store, r, policy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AddCartItem adds one unit of a product variant to the session's cart.
func AddCartItem(manager *cart.Manager, policy pricing.Policy, stats *metrics.CartMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var variant cart.Variant
		if err := validators.DecodeJSONBody(r, &variant); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := manager.Get(middleware.SessionIDFromContext(r.Context()))
		store.Add(variant)
		stats.IncMutation("add")

		view, err := cartView(store, r, policy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// UpdateCartItem replaces the quantity of one cart line. A quantity of zero
// or less removes the line; unknown lines are left alone.
func UpdateCartItem(manager *cart.Manager, policy pricing.Policy, stats *metrics.CartMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateQuantityRequest
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := manager.Get(middleware.SessionIDFromContext(r.Context()))
		store.UpdateQuantity(chi.URLParam(r, "itemID"), body.Quantity)
		stats.IncMutation("update")

		view, err := cartView(store, r, policy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// RemoveCartItem drops one cart line.
func RemoveCartItem(manager *cart.Manager, policy pricing.Policy, stats *metrics.CartMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := manager.Get(middleware.SessionIDFromContext(r.Context()))
		store.Remove(chi.URLParam(r, "itemID"))
		stats.IncMutation("remove")

		view, err := cartView(store, r, policy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ClearCart empties the session's cart.
func ClearCart(manager *cart.Manager, policy pricing.Policy, stats *metrics.CartMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := manager.Get(middleware.SessionIDFromContext(r.Context()))
		store.Clear()
		stats.IncMutation("clear")

		view, err := cartView(store, r, policy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// cartView snapshots the store and prices it. An empty cart is reported with
// a zero quote so the UI does not show a shipping charge for nothing.
func cartView(store *cart.Store, r *http.Request, policy pricing.Policy) (CartView, error) {
	method, err := shippingMethodFromQuery(r)
	if err != nil {
		return CartView{}, err
	}
	items := store.Items()
	view := CartView{Items: items}
	if len(items) > 0 {
		view.Quote = pricing.Compute(items, method, policy)
	}
	return view, nil
}

func shippingMethodFromQuery(r *http.Request) (enums.ShippingMethod, error) {
	raw := r.URL.Query().Get("metodoEnvio")
	if raw == "" {
		return enums.ShippingMethodDelivery, nil
	}
	method, err := enums.ParseShippingMethod(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Selecciona un método de envío")
	}
	return method, nil
}
