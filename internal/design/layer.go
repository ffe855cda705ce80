// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/google/uuid"
)

// Default placement and size for new layers, in percent.
const (
	DefaultX = 10
	DefaultY = 10

	DefaultTextWidth  = 50
	DefaultTextHeight = 10
	DefaultBoxSize    = 30

	DefaultText     = "Add your text"
	DefaultFontSize = 24
	DefaultInk      = "#000000"
)

// Variant is the kind-specific payload of a layer. It is implemented only
// by Text, Image, Shape and Logo.
type Variant interface {
	Kind() Kind
	isVariant()
}

// Text is a literal text run.
type Text struct {
	Content string
	Style   TextStyle
}

// ImageSource says where an image layer gets its pixels: a literal asset
// URL, or a live reference to the owning brand's current logo.
type ImageSource struct {
	BrandLogo bool
	URL       string
}

// LiteralSource returns a source bound to a fixed asset URL.
func LiteralSource(url string) ImageSource { return ImageSource{URL: url} }

// BrandLogoSource returns a source that follows the brand's current logo.
func BrandLogoSource() ImageSource { return ImageSource{BrandLogo: true} }

// Resolve returns the URL to draw, given the brand's current logo URL.
func (s ImageSource) Resolve(logoURL string) string {
	if s.BrandLogo {
		return logoURL
	}
	return s.URL
}

// Image is a picture layer.
type Image struct {
	Source ImageSource
}

// Shape is a filled rectangle defined by its background color and geometry.
type Shape struct {
	Style ShapeStyle
}

// Logo always draws the brand's current primary logo. It has no content of
// its own so logo changes reach every template without edits.
type Logo struct{}

func (Text) Kind() Kind  { return KindText }
func (Image) Kind() Kind { return KindImage }
func (Shape) Kind() Kind { return KindShape }
func (Logo) Kind() Kind  { return KindLogo }

func (Text) isVariant()  {}
func (Image) isVariant() {}
func (Shape) isVariant() {}
func (Logo) isVariant()  {}

// Layer is one positioned, styled element of a template.
type Layer struct {
	ID string
	Geometry
	// ZIndex is the paint-order key; higher paints on top.
	ZIndex  int
	Variant Variant
	// StyleExtra holds style keys the variant's strict record does not
	// know. They round-trip through JSON untouched and are never checked
	// by guardrails.
	StyleExtra map[string]json.RawMessage
}

// Kind returns the layer's variant kind.
func (l Layer) Kind() Kind {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.Kind()
}

// Content returns the text of a text layer or the literal URL of an image
// layer. Shapes, logos and brand-bound images have no content.
func (l Layer) Content() string {
	switch v := l.Variant.(type) {
	case Text:
		return v.Content
	case Image:
		if !v.Source.BrandLogo {
			return v.Source.URL
		}
	}
	return ""
}

// Clone returns a copy that shares no mutable state with l.
func (l Layer) Clone() Layer {
	l.StyleExtra = maps.Clone(l.StyleExtra)
	return l
}

// LayerOption customizes a layer created by NewLayer.
type LayerOption func(*Layer)

// WithID overrides the generated layer id.
func WithID(id string) LayerOption {
	return func(l *Layer) { l.ID = id }
}

// WithGeometry overrides the default placement and size.
func WithGeometry(g Geometry) LayerOption {
	return func(l *Layer) { l.Geometry = g.Normalize() }
}

// WithContent sets the initial text or image URL. It is ignored for shapes
// and logos.
func WithContent(content string) LayerOption {
	return func(l *Layer) { *l = l.Apply(Patch{Content: &content}) }
}

// WithImageSource sets the source of an image layer.
func WithImageSource(src ImageSource) LayerOption {
	return func(l *Layer) {
		if img, ok := l.Variant.(Image); ok {
			img.Source = src
			l.Variant = img
		}
	}
}

// WithStyle merges initial style attributes into the defaults.
func WithStyle(s StylePatch) LayerOption {
	return func(l *Layer) { *l = l.Apply(Patch{Style: s}) }
}

// NewLayer creates a layer of the given kind with a fresh id, default
// geometry for its kind, and a zIndex equal to the current layer count so
// it paints on top of everything already on the canvas.
func NewLayer(kind Kind, canvasLayerCount int, opts ...LayerOption) (Layer, error) {
	l := Layer{
		ID:       uuid.NewString(),
		Geometry: Geometry{X: DefaultX, Y: DefaultY, Width: DefaultBoxSize, Height: DefaultBoxSize},
		ZIndex:   canvasLayerCount,
	}

	switch kind {
	case KindText:
		l.Width, l.Height = DefaultTextWidth, DefaultTextHeight
		l.Variant = Text{
			Content: DefaultText,
			Style:   TextStyle{Color: DefaultInk, FontSize: DefaultFontSize},
		}
	case KindImage:
		l.Variant = Image{}
	case KindShape:
		l.Variant = Shape{Style: ShapeStyle{BackgroundColor: DefaultInk}}
	case KindLogo:
		l.Variant = Logo{}
	default:
		return Layer{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	for _, opt := range opts {
		opt(&l)
	}
	return l, nil
}
