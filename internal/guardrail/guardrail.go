// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package guardrail checks layer styling against a brand's canonical palette
// and typography. Checks are advisory: they never block an edit, they only
// report which attribute strayed from the brand. Every function here is pure.
package guardrail

import (
	"strings"

	"github.com/google/uuid"

	"brandstudio/internal/design"
	"brandstudio/internal/models"
)

// Colors every palette accepts in addition to the brand's own.
const (
	Black = "#000000"
	White = "#FFFFFF"
)

// Attribute names reported in violations.
const (
	AttrColor           = "color"
	AttrBackgroundColor = "backgroundColor"
	AttrFontFamily      = "fontFamily"
)

// Palette is the closed set of brand colors.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
}

// Typography is the pair of brand font families.
type Typography struct {
	Heading string
	Body    string
}

// PaletteOf extracts the palette from a brand identity.
func PaletteOf(id models.BrandIdentity) Palette {
	return Palette{Primary: id.PrimaryColor, Secondary: id.SecondaryColor, Accent: id.AccentColor}
}

// TypographyOf extracts the typography from a brand identity.
func TypographyOf(id models.BrandIdentity) Typography {
	return Typography{Heading: id.HeadingFont, Body: id.BodyFont}
}

// CheckColor reports whether hex exactly matches (ignoring case) one of the
// palette colors, black, or white. There is no perceptual tolerance: a
// near miss is exactly the drift the check exists to catch. Empty palette
// slots never match.
func CheckColor(hex string, p Palette) bool {
	if hex == "" {
		return false
	}
	for _, c := range [...]string{p.Primary, p.Secondary, p.Accent, Black, White} {
		if c != "" && strings.EqualFold(hex, c) {
			return true
		}
	}
	return false
}

// CheckFont reports whether family contains, or is contained in, either
// brand font name, ignoring case. This lets "Inter Bold" match "Inter".
// Empty brand fonts never match.
func CheckFont(family string, ty Typography) bool {
	f := strings.ToLower(strings.TrimSpace(family))
	if f == "" {
		return false
	}
	for _, brand := range [...]string{ty.Heading, ty.Body} {
		b := strings.ToLower(strings.TrimSpace(brand))
		if b == "" {
			continue
		}
		if strings.Contains(f, b) || strings.Contains(b, f) {
			return true
		}
	}
	return false
}

// Violation names an attribute that failed a check and its offending value.
type Violation struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// Result is the guardrail verdict for a single layer.
type Result struct {
	LayerID    string      `json:"layer_id"`
	ColorOK    bool        `json:"color_ok"`
	FontOK     bool        `json:"font_ok"`
	Violations []Violation `json:"violations,omitempty"`
}

// OK reports whether the layer passed every check.
func (r Result) OK() bool { return r.ColorOK && r.FontOK }

// EvaluateLayer checks the attributes present on the layer. Absent
// attributes pass vacuously, so a shape without a background color or an
// image never fails. Style keys stored outside the variant's own record
// (a backgroundColor on text, say) are not checked.
func EvaluateLayer(l design.Layer, id models.BrandIdentity) Result {
	res := Result{LayerID: l.ID, ColorOK: true, FontOK: true}
	palette := PaletteOf(id)

	switch v := l.Variant.(type) {
	case design.Text:
		if c := v.Style.Color; c != "" && !CheckColor(c, palette) {
			res.ColorOK = false
			res.Violations = append(res.Violations, Violation{Attribute: AttrColor, Value: c})
		}
		if f := v.Style.FontFamily; f != "" && !CheckFont(f, TypographyOf(id)) {
			res.FontOK = false
			res.Violations = append(res.Violations, Violation{Attribute: AttrFontFamily, Value: f})
		}
	case design.Shape:
		if c := v.Style.BackgroundColor; c != "" && !CheckColor(c, palette) {
			res.ColorOK = false
			res.Violations = append(res.Violations, Violation{Attribute: AttrBackgroundColor, Value: c})
		}
	}
	return res
}

// Report is the guardrail verdict for a whole template.
type Report struct {
	TemplateID uuid.UUID `json:"template_id"`
	Compliant  bool      `json:"compliant"`
	Layers     []Result  `json:"layers"`
}

// Violations counts failing layers.
func (r Report) Violations() int {
	n := 0
	for _, l := range r.Layers {
		if !l.OK() {
			n++
		}
	}
	return n
}

// EvaluateTemplate runs EvaluateLayer over every layer in paint order.
func EvaluateTemplate(t design.Template, id models.BrandIdentity) Report {
	rep := Report{TemplateID: t.ID, Compliant: true, Layers: make([]Result, 0, len(t.Layers))}
	for _, l := range t.PaintOrder() {
		res := EvaluateLayer(l, id)
		if !res.OK() {
			rep.Compliant = false
		}
		rep.Layers = append(rep.Layers, res)
	}
	return rep
}
