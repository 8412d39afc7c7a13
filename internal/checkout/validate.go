package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/calmate/storefront/internal/geo"
	pkgerrors "github.com/calmate/storefront/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var validate = newValidator()

// newValidator reports failures under the JSON field name so messages line up
// with the form fields the UI renders.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps form field names to buyer-facing messages in the language
// of the storefront.
type FieldErrors map[string]string

// Validate checks the submission against the form rules. cartLines is the
// number of lines in the session's cart; an empty cart always fails. A nil
// return means the submission is acceptable.
func Validate(submission Submission, cartLines int) FieldErrors {
	fields := FieldErrors{}

	if err := validate.Struct(submission); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fieldErr := range invalid {
				name := jsonFieldName(fieldErr)
				if _, seen := fields[name]; !seen {
					fields[name] = messageFor(name)
				}
			}
		}
	}

	checkLength(fields, "nombre", submission.Nombre, 2)
	checkLength(fields, "apellidos", submission.Apellidos, 2)
	checkLength(fields, "calle", submission.Calle, 5)
	checkLength(fields, "rut", submission.Rut, 8)
	checkPhone(fields, submission.Telefono)
	checkRegionComuna(fields, submission.Region, submission.Comuna)
	checkEnums(fields, submission)

	if cartLines == 0 {
		fields["cart"] = "Tu carrito está vacío"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Err folds the field errors into a single typed error carrying the field
// map as details.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	details := map[string]any{}
	for field, message := range f {
		details[field] = message
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "la información del formulario no es válida").WithDetails(details)
}

// Combined returns one error value joining every field failure, for logs.
func (f FieldErrors) Combined() error {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var combined error
	for _, field := range fields {
		combined = multierr.Append(combined, fmt.Errorf("%s: %s", field, f[field]))
	}
	return combined
}

func checkLength(fields FieldErrors, name, value string, min int) {
	if _, seen := fields[name]; seen {
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		fields[name] = messageFor(name)
	}
}

// checkPhone accepts digits with the usual separators and requires at least
// eight significant characters, matching Chilean local numbers.
func checkPhone(fields FieldErrors, phone string) {
	if _, seen := fields["telefono"]; seen {
		return
	}
	significant := 0
	for _, r := range strings.TrimSpace(phone) {
		switch {
		case unicode.IsDigit(r):
			significant++
		case r == ' ' || r == '+' || r == '-':
		default:
			fields["telefono"] = messageFor("telefono")
			return
		}
	}
	if significant < 8 {
		fields["telefono"] = messageFor("telefono")
	}
}

func checkRegionComuna(fields FieldErrors, regionName, comuna string) {
	if _, seen := fields["region"]; seen {
		return
	}
	region, ok := geo.Find(regionName)
	if !ok {
		fields["region"] = messageFor("region")
		return
	}
	if _, seen := fields["comuna"]; seen {
		return
	}
	if !region.HasComuna(comuna) {
		fields["comuna"] = messageFor("comuna")
	}
}

func checkEnums(fields FieldErrors, submission Submission) {
	if !submission.MetodoEnvio.IsValid() {
		fields["metodoEnvio"] = messageFor("metodoEnvio")
	}
	if !submission.TipoDocumento.IsValid() {
		fields["tipoDocumento"] = messageFor("tipoDocumento")
	}
	if !submission.MetodoPago.IsValid() {
		fields["metodoPago"] = messageFor("metodoPago")
	}
}

func jsonFieldName(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	if field == "" {
		return "form"
	}
	return field
}

var fieldMessages = map[string]string{
	"email":         "Correo inválido",
	"nombre":        "Nombre requerido",
	"apellidos":     "Apellidos requeridos",
	"calle":         "Dirección completa requerida",
	"region":        "Selecciona una región",
	"comuna":        "Selecciona una comuna",
	"telefono":      "Teléfono inválido",
	"rut":           "RUT inválido",
	"metodoEnvio":   "Selecciona un método de envío",
	"tipoDocumento": "Selecciona un tipo de documento",
	"metodoPago":    "Selecciona un método de pago",
}

func messageFor(field string) string {
	if message, ok := fieldMessages[field]; ok {
		return message
	}
	return "Campo inválido"
}
