package checkout

import (
	"strings"
	"testing"

	pkgerrors "github.com/calmate/storefront/pkg/errors"
	"github.com/calmate/storefront/pkg/geocode"
)

func validSubmission() Submission {
	form := NewSubmission()
	form.Email = "maria@example.cl"
	form.Nombre = "María"
	form.Apellidos = "González"
	form.Calle = "Avenida Providencia 1234, depto 5"
	form.Region = "Metropolitana de Santiago"
	form.Comuna = "Providencia"
	form.Telefono = "+56 9 1234 5678"
	form.Rut = "12.345.678-9"
	return form
}

func TestValidSubmissionPasses(t *testing.T) {
	if fields := Validate(validSubmission(), 1); fields != nil {
		t.Fatalf("expected clean validation, got %v", fields)
	}
}

func TestFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Submission)
		field  string
	}{
		{"bad email", func(s *Submission) { s.Email = "not-an-email" }, "email"},
		{"short name", func(s *Submission) { s.Nombre = " M " }, "nombre"},
		{"short apellidos", func(s *Submission) { s.Apellidos = "G" }, "apellidos"},
		{"short street", func(s *Submission) { s.Calle = "Av 1" }, "calle"},
		{"unknown region", func(s *Submission) { s.Region = "Patagonia" }, "region"},
		{"comuna outside region", func(s *Submission) { s.Comuna = "Valdivia" }, "comuna"},
		{"short phone", func(s *Submission) { s.Telefono = "12 34" }, "telefono"},
		{"phone with letters", func(s *Submission) { s.Telefono = "12345678x" }, "telefono"},
		{"short rut", func(s *Submission) { s.Rut = "1234-5" }, "rut"},
		{"bad shipping method", func(s *Submission) { s.MetodoEnvio = "drone" }, "metodoEnvio"},
		{"bad document type", func(s *Submission) { s.TipoDocumento = "ticket" }, "tipoDocumento"},
		{"bad payment method", func(s *Submission) { s.MetodoPago = "tarjeta" }, "metodoPago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validSubmission()
			tc.mutate(&form)
			fields := Validate(form, 1)
			if fields == nil {
				t.Fatal("expected validation failure")
			}
			if _, ok := fields[tc.field]; !ok {
				t.Fatalf("expected failure on %q, got %v", tc.field, fields)
			}
		})
	}
}

func TestPhoneToleratesSeparators(t *testing.T) {
	form := validSubmission()
	form.Telefono = "+56-9-1234-5678"
	if fields := Validate(form, 1); fields != nil {
		t.Fatalf("separators should be tolerated, got %v", fields)
	}
}

func TestEmptyCartBlocksSubmission(t *testing.T) {
	fields := Validate(validSubmission(), 0)
	if fields == nil {
		t.Fatal("empty cart must fail validation")
	}
	if _, ok := fields["cart"]; !ok {
		t.Fatalf("expected cart failure, got %v", fields)
	}
}

func TestErrCarriesFieldDetails(t *testing.T) {
	form := validSubmission()
	form.Email = "nope"
	fields := Validate(form, 1)

	err := fields.Err()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected detail map, got %T", typed.Details())
	}
	if details["email"] != "Correo inválido" {
		t.Fatalf("unexpected email message %v", details["email"])
	}
}

func TestCombinedJoinsEveryFailure(t *testing.T) {
	form := validSubmission()
	form.Email = "nope"
	form.Telefono = "1"
	combined := Validate(form, 1).Combined()
	if combined == nil {
		t.Fatal("expected combined error")
	}
	msg := combined.Error()
	if !strings.Contains(msg, "email") || !strings.Contains(msg, "telefono") {
		t.Fatalf("combined error should name both fields: %s", msg)
	}
}

func TestApplySuggestionFillsStreetRegionAndComuna(t *testing.T) {
	form := validSubmission()
	form.Region = ""
	form.Comuna = ""

	next := form.ApplySuggestion(geocode.Suggestion{
		DisplayName: "Avenida Libertad 250, Viña del Mar, Valparaíso, Chile",
		Road:        "Avenida Libertad",
		HouseNumber: "250",
		City:        "Viña del Mar",
		State:       "Región de Valparaíso",
		Postcode:    "2520000",
	})

	if next.Calle != "Avenida Libertad 250" {
		t.Fatalf("unexpected street %q", next.Calle)
	}
	if next.Region != "Valparaíso" {
		t.Fatalf("unexpected region %q", next.Region)
	}
	if next.Comuna != "Viña del Mar" {
		t.Fatalf("unexpected comuna %q", next.Comuna)
	}
	if next.CodigoPostal != "2520000" {
		t.Fatalf("unexpected postcode %q", next.CodigoPostal)
	}
	if form.Region != "" {
		t.Fatal("ApplySuggestion must not mutate the receiver")
	}
}

func TestApplySuggestionKeepsRegionWhenUnmatched(t *testing.T) {
	form := validSubmission()
	next := form.ApplySuggestion(geocode.Suggestion{
		DisplayName: "Somewhere else",
		Road:        "Calle Falsa",
		State:       "Mendoza",
	})
	if next.Region != form.Region || next.Comuna != form.Comuna {
		t.Fatalf("unmatched region should leave selection alone, got %q/%q", next.Region, next.Comuna)
	}
	if next.Calle != "Calle Falsa" {
		t.Fatalf("street should still be adopted, got %q", next.Calle)
	}
}

func TestApplySuggestionResetsComunaOutsideRegion(t *testing.T) {
	form := validSubmission()
	next := form.ApplySuggestion(geocode.Suggestion{
		Road:  "Avenida Alemania",
		State: "La Araucanía",
		City:  "Ciudad desconocida",
	})
	if next.Region != "La Araucanía" {
		t.Fatalf("unexpected region %q", next.Region)
	}
	if next.Comuna != "" {
		t.Fatalf("comuna should reset when no scoped match exists, got %q", next.Comuna)
	}
}

func TestSetRegionResetsComuna(t *testing.T) {
	form := validSubmission()
	next := form.SetRegion("Biobío")
	if next.Region != "Biobío" || next.Comuna != "" {
		t.Fatalf("unexpected result %q/%q", next.Region, next.Comuna)
	}
}

func TestFullNameJoinsAndTrims(t *testing.T) {
	form := Submission{Nombre: "  María ", Apellidos: " González Pérez "}
	if got := form.FullName(); got != "María González Pérez" {
		t.Fatalf("unexpected full name %q", got)
	}
}
