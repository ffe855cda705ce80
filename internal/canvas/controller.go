// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package canvas provides the stateful editing façade over a single
// template. A Controller sequences layer construction, template mutation and
// guardrail evaluation into the operations an editor drives: add, place,
// update, remove, reorder, select and zoom.
//
// The controller performs no I/O of its own. Brand identity and the asset
// library are injected collaborators, and persistence is left to the caller.
// A Controller is not safe for concurrent use; create one per editing
// request or session.
package canvas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"brandstudio/internal/design"
	"brandstudio/internal/guardrail"
	"brandstudio/internal/models"
)

// Zoom bounds and the default view scale.
const (
	MinZoom     = 0.1
	MaxZoom     = 2.0
	DefaultZoom = 1.0
)

// PlacedAssetSize is the width and height, in percent, of an image layer
// dropped from the asset library.
const PlacedAssetSize = 50

var (
	// ErrNotFound is returned in strict mode when an operation names a
	// layer that is not on the canvas.
	ErrNotFound = errors.New("layer not found")

	// ErrNoTemplate is returned in strict mode when the controller has no
	// template loaded.
	ErrNoTemplate = errors.New("no template loaded")
)

// BrandIdentitySource looks up a brand's current identity snapshot.
type BrandIdentitySource interface {
	Get(ctx context.Context, brandID uuid.UUID) (models.BrandIdentity, error)
}

// AssetLibrary lists the assets a brand can drag onto the canvas.
type AssetLibrary interface {
	List(ctx context.Context, brandID uuid.UUID) ([]models.Asset, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithStrict makes operations on missing layers or a missing template fail
// with ErrNotFound or ErrNoTemplate instead of silently doing nothing.
func WithStrict() Option {
	return func(c *Controller) { c.strict = true }
}

// WithLogger sets the logger used for non-blocking collaborator failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithZoom sets the initial zoom, bounded like SetZoom.
func WithZoom(factor float64) Option {
	return func(c *Controller) { c.zoom = clampZoom(factor) }
}

// WithActiveLayer restores a previously selected layer. Ids not on the
// canvas are ignored.
func WithActiveLayer(id string) Option {
	return func(c *Controller) { c.restoreActive = id }
}

// Controller edits one template. The zero value is not usable; call New.
type Controller struct {
	tmpl   *design.Template
	brands BrandIdentitySource
	assets AssetLibrary

	active        string
	restoreActive string
	zoom          float64
	strict        bool
	logger        *slog.Logger
}

// New returns a controller editing a copy of tmpl. A nil tmpl yields a
// controller with nothing loaded, on which every operation is a no-op (or
// ErrNoTemplate in strict mode).
func New(tmpl *design.Template, brands BrandIdentitySource, assets AssetLibrary, opts ...Option) *Controller {
	c := &Controller{
		brands: brands,
		assets: assets,
		zoom:   DefaultZoom,
		logger: slog.Default(),
	}
	if tmpl != nil {
		t := tmpl.Clone()
		c.tmpl = &t
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.restoreActive != "" && c.tmpl != nil {
		if _, ok := c.tmpl.Layer(c.restoreActive); ok {
			c.active = c.restoreActive
		}
	}
	c.restoreActive = ""
	return c
}

// Template returns a copy of the template being edited and whether one is
// loaded.
func (c *Controller) Template() (design.Template, bool) {
	if c.tmpl == nil {
		return design.Template{}, false
	}
	return c.tmpl.Clone(), true
}

// Strict reports whether the controller runs in strict mode.
func (c *Controller) Strict() bool { return c.strict }

// ActiveLayerID returns the selected layer id, or "" when nothing is
// selected.
func (c *Controller) ActiveLayerID() string { return c.active }

// Zoom returns the current view scale.
func (c *Controller) Zoom() float64 { return c.zoom }

// missingTemplate returns the error for an operation on an empty
// controller: nil unless strict.
func (c *Controller) missingTemplate() error {
	if c.strict {
		return ErrNoTemplate
	}
	return nil
}

func (c *Controller) missingLayer(id string) error {
	if c.strict {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// AddLayer creates a layer of the given kind on top of the canvas and
// selects it. Duplicate ids supplied through options are always an error.
func (c *Controller) AddLayer(ctx context.Context, kind design.Kind, opts ...design.LayerOption) (design.Layer, error) {
	if c.tmpl == nil {
		return design.Layer{}, c.missingTemplate()
	}

	l, err := design.NewLayer(kind, len(c.tmpl.Layers), opts...)
	if err != nil {
		return design.Layer{}, err
	}
	next, err := c.tmpl.AddLayer(l)
	if err != nil {
		return design.Layer{}, err
	}
	c.tmpl = &next
	c.active = l.ID

	c.logger.DebugContext(ctx, "layer added", "template_id", c.tmpl.ID, "layer_id", l.ID, "type", kind)
	return l, nil
}

// PlaceAsset drops an image of the asset library onto the canvas at the
// given percentage coordinates with a fixed 50×50 size, and selects it.
// Coordinates are already in percentage space; out-of-range values are
// clamped.
func (c *Controller) PlaceAsset(ctx context.Context, url string, x, y float64) (design.Layer, error) {
	return c.AddLayer(ctx, design.KindImage,
		design.WithGeometry(design.Geometry{X: x, Y: y, Width: PlacedAssetSize, Height: PlacedAssetSize}),
		design.WithImageSource(design.LiteralSource(url)),
	)
}

// Feedback is the outcome of an update: the layer as stored and its live
// guardrail verdict. Guardrail is nil when the brand identity could not be
// fetched; the update itself still applies.
type Feedback struct {
	Layer     design.Layer      `json:"layer"`
	Guardrail *guardrail.Result `json:"guardrail,omitempty"`
}

// UpdateLayer merges p into the layer and replaces it in place, then
// re-evaluates the guardrail for that layer. A missing layer leaves the
// canvas unchanged and returns a zero Feedback.
func (c *Controller) UpdateLayer(ctx context.Context, id string, p design.Patch) (Feedback, error) {
	if c.tmpl == nil {
		return Feedback{}, c.missingTemplate()
	}
	cur, ok := c.tmpl.Layer(id)
	if !ok {
		return Feedback{}, c.missingLayer(id)
	}

	updated := cur.Apply(p)
	next, _ := c.tmpl.ReplaceLayer(updated)
	c.tmpl = &next

	fb := Feedback{Layer: updated}
	identity, err := c.identity(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "guardrail skipped: brand identity unavailable",
			"brand_id", c.tmpl.BrandID, "layer_id", id, "error", err)
		return fb, nil
	}
	res := guardrail.EvaluateLayer(updated, identity)
	fb.Guardrail = &res
	return fb, nil
}

// RemoveLayer deletes a layer and clears the selection if it pointed at
// it. Removing an absent layer is a no-op.
func (c *Controller) RemoveLayer(id string) error {
	if c.tmpl == nil {
		return c.missingTemplate()
	}
	if _, ok := c.tmpl.Layer(id); !ok {
		return c.missingLayer(id)
	}
	next := c.tmpl.RemoveLayer(id)
	c.tmpl = &next
	if c.active == id {
		c.active = ""
	}
	return nil
}

// BringToFront raises a layer above every other layer. Only its zIndex
// changes; storage order is untouched.
func (c *Controller) BringToFront(id string) error {
	return c.restack(id, func(t design.Template, l design.Layer) (int, bool) {
		top := t.TopZIndex()
		for _, other := range t.Layers {
			if other.ID != l.ID && other.ZIndex == top {
				return top + 1, true
			}
		}
		// Already alone on top.
		return l.ZIndex, false
	})
}

// SendToBack lowers a layer beneath every other layer.
func (c *Controller) SendToBack(id string) error {
	return c.restack(id, func(t design.Template, l design.Layer) (int, bool) {
		bottom := t.BottomZIndex()
		for _, other := range t.Layers {
			if other.ID != l.ID && other.ZIndex == bottom {
				return bottom - 1, true
			}
		}
		return l.ZIndex, false
	})
}

func (c *Controller) restack(id string, target func(design.Template, design.Layer) (int, bool)) error {
	if c.tmpl == nil {
		return c.missingTemplate()
	}
	l, ok := c.tmpl.Layer(id)
	if !ok {
		return c.missingLayer(id)
	}
	z, changed := target(*c.tmpl, l)
	if !changed {
		return nil
	}
	next, _ := c.tmpl.ReplaceLayer(l.Apply(design.Patch{Style: design.StylePatch{ZIndex: &z}}))
	c.tmpl = &next
	return nil
}

// Select marks a layer as active. An empty id clears the selection.
func (c *Controller) Select(id string) error {
	if id == "" {
		c.active = ""
		return nil
	}
	if c.tmpl == nil {
		return c.missingTemplate()
	}
	if _, ok := c.tmpl.Layer(id); !ok {
		return c.missingLayer(id)
	}
	c.active = id
	return nil
}

// SetZoom sets the view scale, bounded to [MinZoom, MaxZoom], and returns
// the value applied. Zoom is view state and never stored on the template.
func (c *Controller) SetZoom(factor float64) float64 {
	c.zoom = clampZoom(factor)
	return c.zoom
}

func clampZoom(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return DefaultZoom
	case f < MinZoom:
		return MinZoom
	case f > MaxZoom:
		return MaxZoom
	default:
		return f
	}
}

// Placement is one layer positioned for drawing.
type Placement struct {
	LayerID string      `json:"layer_id"`
	Type    design.Kind `json:"type"`
	ZIndex  int         `json:"z_index"`
	Rect    design.Rect `json:"rect"`
	// Text is set for text layers.
	Text string `json:"text,omitempty"`
	// URL is the resolved image for image and logo layers. Brand-bound
	// layers resolve to the brand's current logo.
	URL    string `json:"url,omitempty"`
	Active bool   `json:"active,omitempty"`
}

// Scene is a template laid out in pixels at the current zoom.
type Scene struct {
	TemplateID uuid.UUID         `json:"template_id"`
	Dimensions design.Dimensions `json:"dimensions"`
	Zoom       float64           `json:"zoom"`
	Placements []Placement       `json:"placements"`
}

// Scene lays the template out in paint order. The brand identity is only
// fetched when a layer is bound to the brand logo.
func (c *Controller) Scene(ctx context.Context) (Scene, error) {
	if c.tmpl == nil {
		return Scene{}, c.missingTemplate()
	}

	scene := Scene{
		TemplateID: c.tmpl.ID,
		Dimensions: c.tmpl.Dimensions,
		Zoom:       c.zoom,
		Placements: make([]Placement, 0, len(c.tmpl.Layers)),
	}

	var (
		logoURL string
		fetched bool
	)
	logo := func() (string, error) {
		if fetched {
			return logoURL, nil
		}
		id, err := c.identity(ctx)
		if err != nil {
			return "", err
		}
		logoURL, fetched = id.LogoURL, true
		return logoURL, nil
	}

	for _, l := range c.tmpl.PaintOrder() {
		p := Placement{
			LayerID: l.ID,
			Type:    l.Kind(),
			ZIndex:  l.ZIndex,
			Rect:    design.ToPixels(l.Geometry, c.tmpl.Dimensions, c.zoom),
			Active:  l.ID == c.active,
		}
		switch v := l.Variant.(type) {
		case design.Text:
			p.Text = v.Content
		case design.Image:
			if v.Source.BrandLogo {
				u, err := logo()
				if err != nil {
					return Scene{}, fmt.Errorf("resolve brand logo: %w", err)
				}
				p.URL = u
			} else {
				p.URL = v.Source.URL
			}
		case design.Logo:
			u, err := logo()
			if err != nil {
				return Scene{}, fmt.Errorf("resolve brand logo: %w", err)
			}
			p.URL = u
		}
		scene.Placements = append(scene.Placements, p)
	}
	return scene, nil
}

// Guardrails evaluates every layer against the brand's current identity.
func (c *Controller) Guardrails(ctx context.Context) (guardrail.Report, error) {
	if c.tmpl == nil {
		return guardrail.Report{}, c.missingTemplate()
	}
	id, err := c.identity(ctx)
	if err != nil {
		return guardrail.Report{}, fmt.Errorf("load brand identity: %w", err)
	}
	return guardrail.EvaluateTemplate(*c.tmpl, id), nil
}

// Assets lists the brand's asset library as drag targets. A non-empty tag
// keeps only assets carrying it, ignoring case.
func (c *Controller) Assets(ctx context.Context, tag string) ([]models.Asset, error) {
	if c.tmpl == nil {
		return []models.Asset{}, c.missingTemplate()
	}
	if c.assets == nil {
		return []models.Asset{}, nil
	}
	all, err := c.assets.List(ctx, c.tmpl.BrandID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	tag = strings.TrimSpace(tag)
	out := make([]models.Asset, 0, len(all))
	for _, a := range all {
		if tag == "" || a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *Controller) identity(ctx context.Context) (models.BrandIdentity, error) {
	if c.brands == nil {
		return models.BrandIdentity{}, errors.New("no brand identity source")
	}
	return c.brands.Get(ctx, c.tmpl.BrandID)
}
