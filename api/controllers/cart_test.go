package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/calmate/storefront/api/middleware"
	"github.com/calmate/storefront/internal/cart"
	"github.com/calmate/storefront/internal/pricing"
)

func cartRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
}

func decodeCartView(t *testing.T, resp *httptest.ResponseRecorder) CartView {
	t.Helper()
	var envelope struct {
		Data CartView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestAddCartItemCreatesLine(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	handler := AddCartItem(manager, pricing.DefaultPolicy(), nil, nil)

	body := `{"productId":"te-verde","name":"Té Verde Premium","price":8990,"weight":50}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeCartView(t, resp)
	if len(view.Items) != 1 || view.Items[0].ID != "te-verde-50" {
		t.Fatalf("unexpected items %+v", view.Items)
	}
	if view.Quote.Total != 8990+5990 {
		t.Fatalf("unexpected total %d", view.Quote.Total)
	}
}

func TestAddCartItemRejectsBadBody(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	handler := AddCartItem(manager, pricing.DefaultPolicy(), nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/items", `{"productId":"te-verde"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if manager.Get("sess-1").Len() != 0 {
		t.Fatal("invalid body must not touch the cart")
	}
}

func TestGetCartHonorsShippingMethodQuery(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	manager.Get("sess-1").Add(cart.Variant{ProductID: "te-verde", Name: "Té Verde", Price: 8990, Weight: 50})
	handler := GetCart(manager, pricing.DefaultPolicy(), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodGet, "/api/v1/cart?metodoEnvio=retiro", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view := decodeCartView(t, resp); view.Quote.Shipping != 0 {
		t.Fatalf("pickup should not charge shipping, got %d", view.Quote.Shipping)
	}
}

func TestGetCartRejectsUnknownShippingMethod(t *testing.T) {
	handler := GetCart(cart.NewManager(time.Hour), pricing.DefaultPolicy(), nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodGet, "/api/v1/cart?metodoEnvio=drone", ""))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetCartEmptyHasZeroQuote(t *testing.T) {
	handler := GetCart(cart.NewManager(time.Hour), pricing.DefaultPolicy(), nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodGet, "/api/v1/cart", ""))

	view := decodeCartView(t, resp)
	if len(view.Items) != 0 || view.Quote.Shipping != 0 || view.Quote.Total != 0 {
		t.Fatalf("empty cart should price to zero, got %+v", view)
	}
}

func withItemID(req *http.Request, itemID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemID", itemID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUpdateCartItemQuantity(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	manager.Get("sess-1").Add(cart.Variant{ProductID: "te-verde", Name: "Té Verde", Price: 8990, Weight: 50})
	handler := UpdateCartItem(manager, pricing.DefaultPolicy(), nil, nil)

	req := withItemID(cartRequest(http.MethodPatch, "/api/v1/cart/items/te-verde-50", `{"quantity":3}`), "te-verde-50")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view := decodeCartView(t, resp); view.Items[0].Quantity != 3 {
		t.Fatalf("unexpected quantity %d", view.Items[0].Quantity)
	}
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	manager.Get("sess-1").Add(cart.Variant{ProductID: "te-verde", Name: "Té Verde", Price: 8990, Weight: 50})
	handler := UpdateCartItem(manager, pricing.DefaultPolicy(), nil, nil)

	req := withItemID(cartRequest(http.MethodPatch, "/api/v1/cart/items/te-verde-50", `{"quantity":0}`), "te-verde-50")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if view := decodeCartView(t, resp); len(view.Items) != 0 {
		t.Fatalf("zero quantity should drop the line, got %+v", view.Items)
	}
}

func TestRemoveCartItemUnknownIDIsNoOp(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	manager.Get("sess-1").Add(cart.Variant{ProductID: "te-verde", Name: "Té Verde", Price: 8990, Weight: 50})
	handler := RemoveCartItem(manager, pricing.DefaultPolicy(), nil, nil)

	req := withItemID(cartRequest(http.MethodDelete, "/api/v1/cart/items/nope", ""), "nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view := decodeCartView(t, resp); len(view.Items) != 1 {
		t.Fatalf("unknown id must not change the cart, got %+v", view.Items)
	}
}

func TestClearCartEmptiesSession(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	manager.Get("sess-1").Add(cart.Variant{ProductID: "te-verde", Name: "Té Verde", Price: 8990, Weight: 50})
	handler := ClearCart(manager, pricing.DefaultPolicy(), nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodDelete, "/api/v1/cart", ""))

	if view := decodeCartView(t, resp); len(view.Items) != 0 {
		t.Fatalf("cart should be empty, got %+v", view.Items)
	}
}

func TestSessionsDoNotShareCarts(t *testing.T) {
	manager := cart.NewManager(time.Hour)
	handler := AddCartItem(manager, pricing.DefaultPolicy(), nil, nil)

	body := `{"productId":"te-verde","name":"Té Verde Premium","price":8990,"weight":50}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/items", body))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-2"))
	resp = httptest.NewRecorder()
	GetCart(manager, pricing.DefaultPolicy(), nil).ServeHTTP(resp, req)

	if view := decodeCartView(t, resp); len(view.Items) != 0 {
		t.Fatalf("second session should start empty, got %+v", view.Items)
	}
}
