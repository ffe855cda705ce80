// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandstudio/internal/canvas"
	"brandstudio/internal/design"
	"brandstudio/internal/guardrail"
	"brandstudio/internal/metrics"
	"brandstudio/internal/models"
	"brandstudio/internal/session"
)

// editResponse is returned by every editing operation: the template as
// saved plus the caller's view state. Layer and Guardrail are set by the
// operations that target a single layer.
type editResponse struct {
	Template      design.Template   `json:"template"`
	ActiveLayerID string            `json:"active_layer_id"`
	Zoom          float64           `json:"zoom"`
	Layer         *design.Layer     `json:"layer,omitempty"`
	Guardrail     *guardrail.Result `json:"guardrail,omitempty"`
}

// addLayerRequest is the body of POST /api/templates/{id}/layers.
type addLayerRequest struct {
	Type     design.Kind       `json:"type"`
	ID       string            `json:"id,omitempty"`
	Geometry *design.Geometry  `json:"geometry,omitempty"`
	Content  *string           `json:"content,omitempty"`
	Source   string            `json:"source,omitempty"`
	Style    design.StylePatch `json:"style"`
}

// options turns the request into layer construction options.
func (req addLayerRequest) options() []design.LayerOption {
	var opts []design.LayerOption
	if req.ID != "" {
		opts = append(opts, design.WithID(req.ID))
	}
	if req.Geometry != nil {
		opts = append(opts, design.WithGeometry(*req.Geometry))
	}
	if req.Content != nil {
		opts = append(opts, design.WithContent(*req.Content))
	}
	if req.Source == design.SourceBrandLogo {
		opts = append(opts, design.WithImageSource(design.BrandLogoSource()))
	}
	if !req.Style.IsZero() {
		opts = append(opts, design.WithStyle(req.Style))
	}
	return opts
}

// placeRequest drops an asset on the canvas. X and Y are percentages, or
// pixels on the canvas as drawn at the editor's zoom when Pixels is set.
type placeRequest struct {
	URL    string  `json:"url"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pixels bool    `json:"pixels,omitempty"`
}

// zoomRequest sets the editor's view scale.
type zoomRequest struct {
	Zoom float64 `json:"zoom"`
}

// editor is a controller bound to a stored template and the caller's
// editor session.
type editor struct {
	*canvas.Controller
	sessionID string
	original  design.Template
}

// openEditor loads the {id} template and restores the caller's selection
// and zoom. It answers the request itself and returns false on failure.
func (a *API) openEditor(w http.ResponseWriter, r *http.Request) (*editor, bool) {
	t, ok := a.loadTemplate(w, r)
	if !ok {
		return nil, false
	}

	sid, err := a.sessions.Ensure(w, r)
	if err != nil {
		a.fail(w, r, "editor session", err)
		return nil, false
	}

	opts := []canvas.Option{canvas.WithLogger(a.logger)}
	if a.strict {
		opts = append(opts, canvas.WithStrict())
	}
	st, err := a.sessions.Load(r.Context(), sid, t.ID)
	if err != nil {
		a.logger.WarnContext(r.Context(), "editor state unavailable", "template_id", t.ID, "error", err)
	}
	if st != nil {
		opts = append(opts, canvas.WithZoom(st.Zoom), canvas.WithActiveLayer(st.ActiveLayerID))
	}

	return &editor{
		Controller: canvas.New(t, a.identities, a.assets, opts...),
		sessionID:  sid,
		original:   *t,
	}, true
}

// changed reports whether the layers or name differ from what was loaded.
func (e *editor) changed() (bool, error) {
	cur, _ := e.Template()
	if cur.Name != e.original.Name {
		return true, nil
	}
	before, err := json.Marshal(e.original.Layers)
	if err != nil {
		return false, err
	}
	after, err := json.Marshal(cur.Layers)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(before, after), nil
}

// commit saves the template when an operation changed it, stores the view
// state and writes the edit response.
func (a *API) commit(w http.ResponseWriter, r *http.Request, e *editor, status int, resp editResponse) {
	t, _ := e.Template()

	changed, err := e.changed()
	if err != nil {
		a.fail(w, r, "compare template", err)
		return
	}
	if changed {
		if err := a.templates.Save(r.Context(), &t); err != nil {
			a.fail(w, r, "save template", err)
			return
		}
	}

	a.saveView(r, e, t)

	resp.Template = t
	resp.ActiveLayerID = e.ActiveLayerID()
	resp.Zoom = e.Zoom()
	writeJSON(w, status, resp)
}

// saveView stores selection and zoom. View state is not worth failing an
// edit over, so errors are only logged.
func (a *API) saveView(r *http.Request, e *editor, t design.Template) {
	st := &session.State{TemplateID: t.ID, ActiveLayerID: e.ActiveLayerID(), Zoom: e.Zoom()}
	if err := a.sessions.Save(r.Context(), e.sessionID, st); err != nil {
		a.logger.WarnContext(r.Context(), "editor state not saved", "template_id", t.ID, "error", err)
	}
}

// AddLayer creates a layer on top of the canvas and selects it.
func (a *API) AddLayer(w http.ResponseWriter, r *http.Request) {
	var req addLayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}

	l, err := e.AddLayer(r.Context(), req.Type, req.options()...)
	if err != nil {
		a.fail(w, r, "add layer", err)
		return
	}
	a.commit(w, r, e, http.StatusCreated, editResponse{Layer: &l})
}

// UpdateLayer applies a partial update to a layer and returns the live
// guardrail verdict for it.
func (a *API) UpdateLayer(w http.ResponseWriter, r *http.Request) {
	var p design.Patch
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}

	fb, err := e.UpdateLayer(r.Context(), chi.URLParam(r, "layerID"), p)
	if err != nil {
		a.fail(w, r, "update layer", err)
		return
	}

	resp := editResponse{Guardrail: fb.Guardrail}
	if fb.Layer.ID != "" {
		resp.Layer = &fb.Layer
	}
	if fb.Guardrail != nil {
		metrics.ObserveGuardrail(*fb.Guardrail)
	}
	a.commit(w, r, e, http.StatusOK, resp)
}

// RemoveLayer deletes a layer from the canvas.
func (a *API) RemoveLayer(w http.ResponseWriter, r *http.Request) {
	a.layerOp(w, r, "remove layer", func(e *editor, id string) error { return e.RemoveLayer(id) })
}

// BringToFront raises a layer above all others.
func (a *API) BringToFront(w http.ResponseWriter, r *http.Request) {
	a.layerOp(w, r, "bring layer to front", func(e *editor, id string) error { return e.BringToFront(id) })
}

// SendToBack lowers a layer beneath all others.
func (a *API) SendToBack(w http.ResponseWriter, r *http.Request) {
	a.layerOp(w, r, "send layer to back", func(e *editor, id string) error { return e.SendToBack(id) })
}

// SelectLayer marks a layer as the caller's active layer.
func (a *API) SelectLayer(w http.ResponseWriter, r *http.Request) {
	a.layerOp(w, r, "select layer", func(e *editor, id string) error { return e.Select(id) })
}

func (a *API) layerOp(w http.ResponseWriter, r *http.Request, op string, fn func(*editor, string) error) {
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}
	if err := fn(e, chi.URLParam(r, "layerID")); err != nil {
		a.fail(w, r, op, err)
		return
	}
	a.commit(w, r, e, http.StatusOK, editResponse{})
}

// PlaceAsset drops an image onto the canvas at the given coordinates.
func (a *API) PlaceAsset(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" || len(req.URL) > maxURLLen {
		writeError(w, http.StatusUnprocessableEntity, "url is required")
		return
	}
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}

	x, y := req.X, req.Y
	if req.Pixels {
		t, _ := e.Template()
		x, y = design.ToPercent(x, y, t.Dimensions, e.Zoom())
	}
	l, err := e.PlaceAsset(r.Context(), req.URL, x, y)
	if err != nil {
		a.fail(w, r, "place asset", err)
		return
	}
	a.commit(w, r, e, http.StatusCreated, editResponse{Layer: &l})
}

// SetZoom changes the caller's view scale. The applied value is bounded
// and returned in the response.
func (a *API) SetZoom(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}
	e.SetZoom(req.Zoom)
	a.commit(w, r, e, http.StatusOK, editResponse{})
}

// Scene returns the template laid out in pixels at the caller's zoom.
func (a *API) Scene(w http.ResponseWriter, r *http.Request) {
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}
	scene, err := e.Scene(r.Context())
	if err != nil {
		a.fail(w, r, "render scene", err)
		return
	}
	writeJSON(w, http.StatusOK, scene)
}

// Guardrails returns the brand compliance report of the whole template.
func (a *API) Guardrails(w http.ResponseWriter, r *http.Request) {
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}
	rep, err := e.Guardrails(r.Context())
	if err != nil {
		a.fail(w, r, "evaluate guardrails", err)
		return
	}
	metrics.ObserveReport(rep)
	writeJSON(w, http.StatusOK, rep)
}

// TemplateAssets lists the brand's assets as drag targets for the editor,
// optionally narrowed by ?tag=.
func (a *API) TemplateAssets(w http.ResponseWriter, r *http.Request) {
	e, ok := a.openEditor(w, r)
	if !ok {
		return
	}
	list, err := e.Assets(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		a.fail(w, r, "list template assets", err)
		return
	}
	if list == nil {
		list = []models.Asset{}
	}
	writeJSON(w, http.StatusOK, list)
}
