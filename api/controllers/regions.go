package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calmate/storefront/api/responses"
	"github.com/calmate/storefront/internal/geo"
	pkgerrors "github.com/calmate/storefront/pkg/errors"
	"github.com/calmate/storefront/pkg/logger"
)

// ListRegions returns the shipping regions in selector order.
func ListRegions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, geo.Regiones())
	}
}

// ListComunas returns the comunas of one region.
func ListComunas(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "region")
		region, ok := geo.Find(name)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Región desconocida"))
			return
		}
		responses.WriteSuccess(w, region.Comunas)
	}
}
