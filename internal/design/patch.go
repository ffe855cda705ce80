// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"encoding/json"
	"maps"
)

// SourceBrandLogo is the wire value binding an image layer to the brand logo.
const SourceBrandLogo = "brand_logo"

// SourceLiteral is the wire value binding an image layer to its content URL.
const SourceLiteral = "literal"

// Patch is a partial layer update. Nil fields are left untouched and Style
// is merged one level deep, so updating a color never drops a font size.
type Patch struct {
	X        *float64   `json:"x,omitempty"`
	Y        *float64   `json:"y,omitempty"`
	Width    *float64   `json:"width,omitempty"`
	Height   *float64   `json:"height,omitempty"`
	Rotation *float64   `json:"rotation,omitempty"`
	Content  *string    `json:"content,omitempty"`
	Source   *string    `json:"source,omitempty"`
	Style    StylePatch `json:"style"`
}

// Apply returns a copy of l with p merged in. The receiver is not modified.
//
// Content on a shape or logo is a no-op. Style attributes that do not belong
// to the layer's variant (a backgroundColor on text, say) are kept in the
// extras bag rather than dropped.
func (l Layer) Apply(p Patch) Layer {
	out := l.Clone()

	if p.X != nil {
		out.X = *p.X
	}
	if p.Y != nil {
		out.Y = *p.Y
	}
	if p.Width != nil {
		out.Width = *p.Width
	}
	if p.Height != nil {
		out.Height = *p.Height
	}
	if p.Rotation != nil {
		out.Rotation = *p.Rotation
	}
	out.Geometry = out.Geometry.Normalize()

	if p.Style.ZIndex != nil {
		out.ZIndex = *p.Style.ZIndex
	}

	extra := patchExtras{bag: out.StyleExtra}

	switch v := out.Variant.(type) {
	case Text:
		if p.Content != nil {
			v.Content = *p.Content
		}
		if p.Style.Color != nil {
			v.Style.Color = *p.Style.Color
		}
		if p.Style.FontSize != nil {
			v.Style.FontSize = *p.Style.FontSize
		}
		if p.Style.FontFamily != nil {
			v.Style.FontFamily = *p.Style.FontFamily
		}
		if p.Style.TextAlign != nil {
			v.Style.TextAlign = *p.Style.TextAlign
		}
		extra.putString(styleBackgroundColor, p.Style.BackgroundColor)
		out.Variant = v
	case Shape:
		if p.Style.BackgroundColor != nil {
			v.Style.BackgroundColor = *p.Style.BackgroundColor
		}
		extra.putTextAttrs(p.Style)
		out.Variant = v
	case Image:
		if p.Content != nil {
			v.Source = LiteralSource(*p.Content)
		}
		if p.Source != nil {
			switch *p.Source {
			case SourceBrandLogo:
				v.Source = BrandLogoSource()
			case SourceLiteral:
				v.Source.BrandLogo = false
			}
		}
		extra.putString(styleBackgroundColor, p.Style.BackgroundColor)
		extra.putTextAttrs(p.Style)
		out.Variant = v
	case Logo:
		extra.putString(styleBackgroundColor, p.Style.BackgroundColor)
		extra.putTextAttrs(p.Style)
	}

	for k, raw := range p.Style.Extra {
		if isNull(raw) {
			extra.del(k)
			continue
		}
		extra.set(k, append(json.RawMessage(nil), raw...))
	}

	out.StyleExtra = extra.bag
	return out
}

// patchExtras edits a layer's extras bag, copying it on first write.
type patchExtras struct {
	bag    map[string]json.RawMessage
	copied bool
}

func (e *patchExtras) own() {
	if e.copied {
		return
	}
	e.bag = maps.Clone(e.bag)
	if e.bag == nil {
		e.bag = make(map[string]json.RawMessage)
	}
	e.copied = true
}

func (e *patchExtras) set(key string, raw json.RawMessage) {
	e.own()
	e.bag[key] = raw
}

func (e *patchExtras) del(key string) {
	if _, ok := e.bag[key]; !ok {
		return
	}
	e.own()
	delete(e.bag, key)
	if len(e.bag) == 0 {
		e.bag = nil
	}
}

func (e *patchExtras) putString(key string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		e.del(key)
		return
	}
	raw, _ := json.Marshal(*v)
	e.set(key, raw)
}

// putTextAttrs stores text-only attributes on a non-text layer.
func (e *patchExtras) putTextAttrs(s StylePatch) {
	e.putString(styleColor, s.Color)
	e.putString(styleFontFamily, s.FontFamily)
	if s.TextAlign != nil {
		a := string(*s.TextAlign)
		e.putString(styleTextAlign, &a)
	}
	if s.FontSize != nil {
		if *s.FontSize == 0 {
			e.del(styleFontSize)
		} else {
			raw, _ := json.Marshal(*s.FontSize)
			e.set(styleFontSize, raw)
		}
	}
}
