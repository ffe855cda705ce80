// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Template is a named canvas of fixed pixel dimensions owning a set of
// layers. Layers are kept in insertion order; paint order comes from each
// layer's ZIndex, so reordering never moves layers in storage.
//
// Template methods never modify the receiver. Mutations return a new
// Template whose layer slice is not shared with the original.
type Template struct {
	ID         uuid.UUID  `json:"id"`
	BrandID    uuid.UUID  `json:"brand_id"`
	Name       string     `json:"name"`
	Channel    string     `json:"channel"`
	Kind       string     `json:"kind"`
	Dimensions Dimensions `json:"dimensions"`
	Layers     []Layer    `json:"layers"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewTemplate creates an empty template for a brand from a blank preset.
func NewTemplate(brandID uuid.UUID, name string, preset Preset) Template {
	return Template{
		ID:         uuid.New(),
		BrandID:    brandID,
		Name:       name,
		Channel:    preset.Channel,
		Kind:       preset.Kind,
		Dimensions: preset.Dimensions,
		Layers:     []Layer{},
	}
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	layers := make([]Layer, len(t.Layers))
	for i, l := range t.Layers {
		layers[i] = l.Clone()
	}
	t.Layers = layers
	return t
}

// Layer returns the layer with the given id.
func (t Template) Layer(id string) (Layer, bool) {
	i := t.indexOf(id)
	if i < 0 {
		return Layer{}, false
	}
	return t.Layers[i], true
}

func (t Template) indexOf(id string) int {
	return slices.IndexFunc(t.Layers, func(l Layer) bool { return l.ID == id })
}

// AddLayer appends a layer. It fails with a *DuplicateIDError if a layer
// with the same id is already present.
func (t Template) AddLayer(l Layer) (Template, error) {
	if t.indexOf(l.ID) >= 0 {
		return t, &DuplicateIDError{TemplateID: t.ID.String(), LayerID: l.ID}
	}
	out := t.Clone()
	out.Layers = append(out.Layers, l.Clone())
	return out, nil
}

// RemoveLayer deletes the layer with the given id. Removing an absent id
// returns t unchanged.
func (t Template) RemoveLayer(id string) Template {
	i := t.indexOf(id)
	if i < 0 {
		return t
	}
	out := t.Clone()
	out.Layers = slices.Delete(out.Layers, i, i+1)
	return out
}

// ReplaceLayer swaps in l for the layer with the same id, keeping its
// storage position. It reports false, and returns t unchanged, when no such
// layer exists.
func (t Template) ReplaceLayer(l Layer) (Template, bool) {
	i := t.indexOf(l.ID)
	if i < 0 {
		return t, false
	}
	out := t.Clone()
	out.Layers[i] = l.Clone()
	return out, true
}

// PaintOrder returns the layers sorted by ZIndex ascending. Ties keep their
// insertion order, so identical templates always paint identically.
func (t Template) PaintOrder() []Layer {
	ordered := slices.Clone(t.Layers)
	slices.SortStableFunc(ordered, func(a, b Layer) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return ordered
}

// TopZIndex returns the highest zIndex in use, or -1 for an empty template.
func (t Template) TopZIndex() int {
	top := -1
	for i, l := range t.Layers {
		if i == 0 || l.ZIndex > top {
			top = l.ZIndex
		}
	}
	return top
}

// BottomZIndex returns the lowest zIndex in use, or 0 for an empty template.
func (t Template) BottomZIndex() int {
	bottom := 0
	for i, l := range t.Layers {
		if i == 0 || l.ZIndex < bottom {
			bottom = l.ZIndex
		}
	}
	return bottom
}

// Duplicate copies t under a new id and name. Layer ids are kept since
// they only need to be unique within one template.
func (t Template) Duplicate(name string) Template {
	out := t.Clone()
	out.ID = uuid.New()
	out.Name = name
	out.Version = 0
	out.CreatedAt = time.Time{}
	out.UpdatedAt = time.Time{}
	return out
}

// Resize migrates t to new pixel dimensions. Output size is fixed for a
// template's lifetime, so the result is a new template; layer percentages
// carry over unchanged because they are resolution independent.
func (t Template) Resize(d Dimensions, name string) Template {
	out := t.Duplicate(name)
	out.Dimensions = d
	return out
}
