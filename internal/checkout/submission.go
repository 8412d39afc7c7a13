package checkout

import (
	"strings"

	"github.com/calmate/storefront/internal/geo"
	"github.com/calmate/storefront/pkg/enums"
	"github.com/calmate/storefront/pkg/geocode"
)

// Submission is the full checkout form as posted by the storefront. Field
// names match the form fields the UI renders.
type Submission struct {
	Email        string `json:"email" validate:"required,email"`
	Nombre       string `json:"nombre" validate:"required"`
	Apellidos    string `json:"apellidos" validate:"required"`
	Calle        string `json:"calle" validate:"required"`
	Referencia   string `json:"referencia"`
	Region       string `json:"region" validate:"required"`
	Comuna       string `json:"comuna" validate:"required"`
	CodigoPostal string `json:"codigoPostal"`
	Telefono     string `json:"telefono" validate:"required"`
	Rut          string `json:"rut" validate:"required"`

	MetodoEnvio   enums.ShippingMethod `json:"metodoEnvio" validate:"required"`
	TipoDocumento enums.DocumentType   `json:"tipoDocumento" validate:"required"`
	MetodoPago    enums.PaymentMethod  `json:"metodoPago" validate:"required"`

	GuardarInfo bool `json:"guardarInfo"`
	Novedades   bool `json:"novedades"`
}

// FullName joins the name fields the way the order service expects them.
func (s Submission) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(s.Nombre) + " " + strings.TrimSpace(s.Apellidos))
}

// ApplySuggestion folds a geocoder suggestion into the form: the street is
// replaced, and region and comuna are adopted only when they resolve against
// the known region list. The comuna match is scoped to the resolved region.
func (s Submission) ApplySuggestion(suggestion geocode.Suggestion) Submission {
	next := s
	if street := suggestion.Street(); street != "" {
		next.Calle = street
	}
	if suggestion.Postcode != "" {
		next.CodigoPostal = suggestion.Postcode
	}
	region, ok := geo.Match(suggestion.State)
	if !ok {
		return next
	}
	next.Region = region.Nombre
	next.Comuna = ""
	if comuna, ok := region.MatchComuna(suggestion.Locality()); ok {
		next.Comuna = comuna
	}
	return next
}

// SetRegion switches the region and resets the comuna, which is only
// meaningful within one region.
func (s Submission) SetRegion(region string) Submission {
	next := s
	next.Region = region
	next.Comuna = ""
	return next
}
