package geo

import "strings"

// Region is one Chilean administrative region with its ordered comunas.
type Region struct {
	ID      int      `json:"id"`
	Nombre  string   `json:"nombre"`
	Comunas []string `json:"comunas"`
}

// Regiones returns the full north-to-south region list.
func Regiones() []Region {
	return regiones
}

// Find returns the region whose name matches exactly, ignoring case.
func Find(nombre string) (Region, bool) {
	trimmed := strings.TrimSpace(nombre)
	for _, region := range regiones {
		if strings.EqualFold(region.Nombre, trimmed) {
			return region, true
		}
	}
	return Region{}, false
}

// Match resolves free-form region text, as returned by a geocoder, against
// the known list: a case-insensitive substring hit in either direction wins.
func Match(text string) (Region, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return Region{}, false
	}
	for _, region := range regiones {
		name := strings.ToLower(region.Nombre)
		if strings.Contains(needle, name) || strings.Contains(name, needle) {
			return region, true
		}
	}
	return Region{}, false
}

// HasComuna reports whether the comuna belongs to the region, ignoring case.
func (r Region) HasComuna(nombre string) bool {
	trimmed := strings.TrimSpace(nombre)
	for _, comuna := range r.Comunas {
		if strings.EqualFold(comuna, trimmed) {
			return true
		}
	}
	return false
}

// MatchComuna resolves free-form comuna text against the region's list:
// either an exact case-insensitive hit or the text containing the comuna.
func (r Region) MatchComuna(text string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return "", false
	}
	for _, comuna := range r.Comunas {
		name := strings.ToLower(comuna)
		if needle == name || strings.Contains(needle, name) {
			return comuna, true
		}
	}
	return "", false
}
