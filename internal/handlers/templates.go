// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"brandstudio/internal/design"
	"brandstudio/internal/store"
)

// createTemplateRequest is the body of POST /api/brands/{brandID}/templates.
// Either Preset names a blank canvas or Document carries a template to
// import; an imported document keeps its dimensions and layers.
type createTemplateRequest struct {
	Name     string          `json:"name"`
	Preset   string          `json:"preset"`
	Document json.RawMessage `json:"document,omitempty"`
}

// copyRequest is the body of duplicate and resize.
type copyRequest struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// loadTemplate fetches a template by the {id} route parameter, answering
// 404 when it does not exist.
func (a *API) loadTemplate(w http.ResponseWriter, r *http.Request) (*design.Template, bool) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return nil, false
	}
	t, err := a.templates.Load(r.Context(), id)
	if err != nil {
		a.fail(w, r, "load template", err)
		return nil, false
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return nil, false
	}
	return t, true
}

// ListTemplates returns a brand's templates, most recently edited first.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	brandID, ok := uuidParam(w, r, "brandID")
	if !ok {
		return
	}
	list, err := a.templates.ListByBrand(r.Context(), brandID)
	if err != nil {
		a.fail(w, r, "list templates", err)
		return
	}
	if list == nil {
		list = []design.Template{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateTemplate starts an empty template from a preset or imports a
// template document for the brand.
func (a *API) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	brandID, ok := uuidParam(w, r, "brandID")
	if !ok {
		return
	}
	var req createTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	brand, err := a.brands.Find(r.Context(), brandID)
	if err != nil {
		a.fail(w, r, "find brand", err)
		return
	}
	if brand == nil {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}

	var t design.Template
	switch {
	case len(req.Document) > 0:
		t, err = design.DecodeDocument(req.Document)
		if err != nil {
			a.fail(w, r, "import template", err)
			return
		}
		t.ID = uuid.New()
		t.BrandID = brandID
		t.Version = 0
		if req.Name != "" {
			t.Name = req.Name
		}
	default:
		preset, found := design.PresetByKey(req.Preset)
		if !found {
			writeError(w, http.StatusUnprocessableEntity, "unknown preset "+req.Preset)
			return
		}
		t = design.NewTemplate(brandID, req.Name, preset)
	}

	t.Name = strings.TrimSpace(t.Name)
	if msg := validateTemplateName(t.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := a.templates.Save(r.Context(), &t); err != nil {
		a.fail(w, r, "create template", err)
		return
	}
	a.logger.InfoContext(r.Context(), "template created",
		"template_id", t.ID, "brand_id", brandID, "layers", len(t.Layers))
	writeJSON(w, http.StatusCreated, t)
}

// GetTemplate returns the template document.
func (a *API) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ReplaceTemplate overwrites the name and layers of a template from a full
// document. Identity, brand and dimensions are fixed: a document with
// other dimensions is rejected in favour of an explicit resize. A document
// carrying a version must match the stored one.
func (a *API) ReplaceTemplate(w http.ResponseWriter, r *http.Request) {
	cur, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	doc, err := design.DecodeDocument(raw)
	if err != nil {
		a.fail(w, r, "replace template", err)
		return
	}
	if doc.Version != 0 && doc.Version != cur.Version {
		a.fail(w, r, "replace template", store.ErrConflict)
		return
	}
	if doc.Dimensions != cur.Dimensions {
		writeError(w, http.StatusConflict, "template dimensions are fixed; use resize")
		return
	}
	if msg := validateTemplateName(doc.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	next := cur.Clone()
	next.Name = strings.TrimSpace(doc.Name)
	next.Layers = doc.Layers
	if err := a.templates.Save(r.Context(), &next); err != nil {
		a.fail(w, r, "replace template", err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// DeleteTemplate removes a template and every editor's view state of it.
func (a *API) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	deleted, err := a.templates.Delete(r.Context(), id)
	if err != nil {
		a.fail(w, r, "delete template", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err := a.sessions.Forget(r.Context(), id); err != nil {
		a.logger.WarnContext(r.Context(), "editor state cleanup failed", "template_id", id, "error", err)
	}
	a.logger.InfoContext(r.Context(), "template deleted", "template_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateTemplate copies a template under a new id.
func (a *API) DuplicateTemplate(w http.ResponseWriter, r *http.Request) {
	a.copyTemplate(w, r, false)
}

// ResizeTemplate copies a template onto a canvas of new pixel dimensions.
// Layer percentages carry over unchanged.
func (a *API) ResizeTemplate(w http.ResponseWriter, r *http.Request) {
	a.copyTemplate(w, r, true)
}

func (a *API) copyTemplate(w http.ResponseWriter, r *http.Request, resize bool) {
	src, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}
	var req copyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = src.Name + " (copy)"
	}
	if msg := validateTemplateName(name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	var out design.Template
	if resize {
		d := design.Dimensions{Width: req.Width, Height: req.Height}
		if msg := validateDimensions(d); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		out = src.Resize(d, name)
	} else {
		out = src.Duplicate(name)
	}

	if err := a.templates.Save(r.Context(), &out); err != nil {
		a.fail(w, r, "copy template", err)
		return
	}
	a.logger.InfoContext(r.Context(), "template copied",
		"source_id", src.ID, "template_id", out.ID, "resized", resize)
	writeJSON(w, http.StatusCreated, out)
}
