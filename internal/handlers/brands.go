// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"brandstudio/internal/design"
	"brandstudio/internal/models"
)

// brandRequest is the body of POST /api/brands.
type brandRequest struct {
	Name     string               `json:"name"`
	Identity models.BrandIdentity `json:"identity"`
}

// Presets lists the blank canvases templates can be created from.
func (a *API) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, design.Presets())
}

// ListBrands returns every brand.
func (a *API) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := a.brands.List(r.Context())
	if err != nil {
		a.fail(w, r, "list brands", err)
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	writeJSON(w, http.StatusOK, brands)
}

// CreateBrand registers a brand with its identity.
func (a *API) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateBrandName(req.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if msg := validateIdentity(req.Identity); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	b, err := a.brands.Create(r.Context(), &models.Brand{
		Name:     strings.TrimSpace(req.Name),
		Identity: req.Identity,
	})
	if err != nil {
		a.fail(w, r, "create brand", err)
		return
	}
	a.logger.InfoContext(r.Context(), "brand created", "brand_id", b.ID, "name", b.Name)
	writeJSON(w, http.StatusCreated, b)
}

// GetBrand returns one brand.
func (a *API) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "brandID")
	if !ok {
		return
	}
	b, err := a.brands.Find(r.Context(), id)
	if err != nil {
		a.fail(w, r, "get brand", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateBrandIdentity replaces a brand's palette, typography and logo and
// drops the cached snapshot so open editors see the change on their next
// guardrail check or scene render.
func (a *API) UpdateBrandIdentity(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "brandID")
	if !ok {
		return
	}
	var identity models.BrandIdentity
	if err := decodeJSON(w, r, &identity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateIdentity(identity); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	b, err := a.brands.UpdateIdentity(r.Context(), id, identity)
	if err != nil {
		a.fail(w, r, "update brand identity", err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}
	a.identities.Invalidate(r.Context(), id)
	a.logger.InfoContext(r.Context(), "brand identity updated", "brand_id", id)
	writeJSON(w, http.StatusOK, b)
}
