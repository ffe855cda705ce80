// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"encoding/json"
	"fmt"
)

// layerJSON is the wire shape of a layer. Style is an open bag so that keys
// this version does not understand survive a save/load cycle.
type layerJSON struct {
	ID       string                     `json:"id"`
	Type     Kind                       `json:"type"`
	X        float64                    `json:"x"`
	Y        float64                    `json:"y"`
	Width    float64                    `json:"width"`
	Height   float64                    `json:"height"`
	Rotation float64                    `json:"rotation"`
	Style    map[string]json.RawMessage `json:"style"`
	Content  *string                    `json:"content,omitempty"`
	Source   string                     `json:"source,omitempty"`
}

// MarshalJSON encodes the layer in its wire shape.
func (l Layer) MarshalJSON() ([]byte, error) {
	if l.Variant == nil {
		return nil, fmt.Errorf("layer %s: %w", l.ID, ErrUnknownKind)
	}

	w := layerJSON{
		ID:       l.ID,
		Type:     l.Kind(),
		X:        l.X,
		Y:        l.Y,
		Width:    l.Width,
		Height:   l.Height,
		Rotation: l.Rotation,
		Style:    make(map[string]json.RawMessage, len(l.StyleExtra)+5),
	}
	for k, v := range l.StyleExtra {
		w.Style[k] = v
	}

	var typed any
	switch v := l.Variant.(type) {
	case Text:
		typed = v.Style
		content := v.Content
		w.Content = &content
	case Shape:
		typed = v.Style
	case Image:
		if v.Source.BrandLogo {
			w.Source = SourceBrandLogo
		} else {
			url := v.Source.URL
			w.Content = &url
		}
	}
	if typed != nil {
		if err := mergeStruct(w.Style, typed); err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.ID, err)
		}
	}

	z, _ := json.Marshal(l.ZIndex)
	w.Style[styleZIndex] = z

	return json.Marshal(w)
}

// UnmarshalJSON decodes a layer from its wire shape. Geometry is normalized
// on the way in; unknown style keys land in StyleExtra.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var w layerJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode layer: %w", err)
	}

	var patch StylePatch
	if w.Style != nil {
		raw, err := json.Marshal(w.Style)
		if err != nil {
			return fmt.Errorf("layer %s: %w", w.ID, err)
		}
		if err := json.Unmarshal(raw, &patch); err != nil {
			return fmt.Errorf("layer %s: %w", w.ID, err)
		}
	}

	out := Layer{
		ID: w.ID,
		Geometry: Geometry{
			X: w.X, Y: w.Y, Width: w.Width, Height: w.Height, Rotation: w.Rotation,
		}.Normalize(),
	}
	switch w.Type {
	case KindText:
		out.Variant = Text{}
	case KindImage:
		out.Variant = Image{}
	case KindShape:
		out.Variant = Shape{}
	case KindLogo:
		out.Variant = Logo{}
	default:
		return fmt.Errorf("layer %s: %w: %q", w.ID, ErrUnknownKind, w.Type)
	}

	p := Patch{Content: w.Content, Style: patch}
	if w.Source != "" {
		p.Source = &w.Source
	}
	// A brand-bound image ignores any stale content that came with it.
	if w.Source == SourceBrandLogo {
		p.Content = nil
	}
	*l = out.Apply(p)
	return nil
}

// mergeStruct marshals v and copies its keys into bag.
func mergeStruct(bag map[string]json.RawMessage, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	for k, f := range fields {
		bag[k] = f
	}
	return nil
}
