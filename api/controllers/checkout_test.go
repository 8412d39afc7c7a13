package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calmate/storefront/api/middleware"
	"github.com/calmate/storefront/internal/checkout"
	pkgerrors "github.com/calmate/storefront/pkg/errors"
)

type stubCheckoutService struct {
	prefill      checkout.Submission
	prefillErr   error
	confirmation *checkout.Confirmation
	submitErr    error
	lastInput    checkout.SubmitInput
}

func (s *stubCheckoutService) Prefill(ctx context.Context, userID string) (checkout.Submission, error) {
	return s.prefill, s.prefillErr
}

func (s *stubCheckoutService) Submit(ctx context.Context, input checkout.SubmitInput) (*checkout.Confirmation, error) {
	s.lastInput = input
	return s.confirmation, s.submitErr
}

func (s *stubCheckoutService) Phase(sessionID string) checkout.Phase {
	return checkout.PhaseIdle
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithSessionID(req.Context(), "sess-1")
	ctx = middleware.WithUserID(ctx, "user-1")
	return req.WithContext(ctx)
}

func TestCheckoutPrefillReturnsForm(t *testing.T) {
	form := checkout.NewSubmission()
	form.Nombre = "María"
	handler := CheckoutPrefill(&stubCheckoutService{prefill: form}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/checkout/prefill", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data checkout.Submission `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Nombre != "María" {
		t.Fatalf("unexpected form %+v", envelope.Data)
	}
	if envelope.Data.MetodoEnvio != "domicilio" {
		t.Fatalf("defaults missing: %+v", envelope.Data)
	}
}

func TestCheckoutSubmitSuccess(t *testing.T) {
	svc := &stubCheckoutService{confirmation: &checkout.Confirmation{
		OrderID:      "o-42",
		RedirectPath: "/orden-confirmada?id=o-42",
	}}
	handler := CheckoutSubmit(svc, nil)

	body := `{"email":"maria@example.cl","nombre":"María","apellidos":"González","calle":"Avenida Providencia 1234","region":"Metropolitana de Santiago","comuna":"Providencia","telefono":"+56912345678","rut":"12.345.678-9","metodoEnvio":"domicilio","tipoDocumento":"boleta","metodoPago":"contra_entrega"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.SessionID != "sess-1" || svc.lastInput.UserID != "user-1" {
		t.Fatalf("handler must forward identities, got %+v", svc.lastInput)
	}
	if svc.lastInput.Form.Comuna != "Providencia" {
		t.Fatalf("form not forwarded: %+v", svc.lastInput.Form)
	}

	var envelope struct {
		Data checkout.Confirmation `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RedirectPath != "/orden-confirmada?id=o-42" {
		t.Fatalf("unexpected redirect %s", envelope.Data.RedirectPath)
	}
}

func TestCheckoutSubmitValidationDetails(t *testing.T) {
	svc := &stubCheckoutService{submitErr: pkgerrors.New(pkgerrors.CodeValidation, "la información del formulario no es válida").
		WithDetails(map[string]any{"telefono": "Teléfono inválido"})}
	handler := CheckoutSubmit(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", `{"email":"x"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Details["telefono"] != "Teléfono inválido" {
		t.Fatalf("expected field detail, got %v", envelope.Error.Details)
	}
}

func TestCheckoutSubmitRejectionStatus(t *testing.T) {
	svc := &stubCheckoutService{submitErr: pkgerrors.New(pkgerrors.CodeRejected, "Stock insuficiente")}
	handler := CheckoutSubmit(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", `{"email":"x"}`))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Stock insuficiente") {
		t.Fatalf("provider message should pass through: %s", resp.Body.String())
	}
}

func TestCheckoutSubmitMalformedBody(t *testing.T) {
	handler := CheckoutSubmit(&stubCheckoutService{}, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", `{"email":`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
