// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Kind discriminates the layer variants.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindShape Kind = "shape"
	KindLogo  Kind = "logo"
)

// Valid reports whether k is one of the known layer kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindImage, KindShape, KindLogo:
		return true
	}
	return false
}

// TextAlign is the horizontal alignment of a text layer.
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// Style keys as they appear in the JSON style bag.
const (
	styleZIndex          = "zIndex"
	styleColor           = "color"
	styleFontSize        = "fontSize"
	styleFontFamily      = "fontFamily"
	styleTextAlign       = "textAlign"
	styleBackgroundColor = "backgroundColor"
)

// TextStyle is the strict style record of a text layer. Empty values mean
// the attribute is absent: a stored "color": "" loads as no color and is
// not written back.
type TextStyle struct {
	Color      string    `json:"color,omitempty"`
	FontSize   float64   `json:"fontSize,omitempty"`
	FontFamily string    `json:"fontFamily,omitempty"`
	TextAlign  TextAlign `json:"textAlign,omitempty"`
}

// ShapeStyle is the strict style record of a shape layer.
type ShapeStyle struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// StylePatch is a partial style update. Nil fields are left untouched.
// A field pointing at the zero value clears the attribute (JSON null does
// the same when decoding). Extra carries keys the typed fields do not know
// about; a null value removes the key.
type StylePatch struct {
	ZIndex          *int
	Color           *string
	FontSize        *float64
	FontFamily      *string
	TextAlign       *TextAlign
	BackgroundColor *string
	Extra           map[string]json.RawMessage
}

// IsZero reports whether the patch changes nothing.
func (p StylePatch) IsZero() bool {
	return p.ZIndex == nil && p.Color == nil && p.FontSize == nil &&
		p.FontFamily == nil && p.TextAlign == nil && p.BackgroundColor == nil &&
		len(p.Extra) == 0
}

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// UnmarshalJSON decodes a style bag, routing known keys to typed fields and
// everything else to Extra.
func (p *StylePatch) UnmarshalJSON(data []byte) error {
	var bag map[string]json.RawMessage
	if err := json.Unmarshal(data, &bag); err != nil {
		return fmt.Errorf("style patch: %w", err)
	}
	*p = StylePatch{}
	for key, raw := range bag {
		null := isNull(raw)
		var err error
		switch key {
		case styleZIndex:
			if null {
				continue
			}
			var zi int
			if zi, err = decodeZIndex(raw); err == nil {
				p.ZIndex = &zi
			}
		case styleColor:
			p.Color, err = decodeOptionalString(raw, null)
		case styleFontFamily:
			p.FontFamily, err = decodeOptionalString(raw, null)
		case styleBackgroundColor:
			p.BackgroundColor, err = decodeOptionalString(raw, null)
		case styleTextAlign:
			var s *string
			s, err = decodeOptionalString(raw, null)
			if s != nil {
				a := TextAlign(*s)
				p.TextAlign = &a
			}
		case styleFontSize:
			var f float64
			if !null {
				err = json.Unmarshal(raw, &f)
			}
			p.FontSize = &f
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[key] = append(json.RawMessage(nil), raw...)
		}
		if err != nil {
			return fmt.Errorf("style.%s: %w", key, err)
		}
	}
	return nil
}

// decodeZIndex accepts any JSON number with an integral value in int32
// range, so 3 and 3.0 are the same layer order and 2.5 is an error.
func decodeZIndex(raw json.RawMessage) (int, error) {
	var z float64
	if err := json.Unmarshal(raw, &z); err != nil {
		return 0, err
	}
	if z != math.Trunc(z) || z < math.MinInt32 || z > math.MaxInt32 {
		return 0, fmt.Errorf("must be an integer in int32 range, got %v", z)
	}
	return int(z), nil
}

// MarshalJSON encodes the patch back into a style bag. Cleared attributes
// are written as null.
func (p StylePatch) MarshalJSON() ([]byte, error) {
	bag := make(map[string]any, len(p.Extra)+6)
	for k, v := range p.Extra {
		bag[k] = v
	}
	if p.ZIndex != nil {
		bag[styleZIndex] = *p.ZIndex
	}
	putOptional := func(key string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			bag[key] = nil
			return
		}
		bag[key] = *v
	}
	putOptional(styleColor, p.Color)
	putOptional(styleFontFamily, p.FontFamily)
	putOptional(styleBackgroundColor, p.BackgroundColor)
	if p.TextAlign != nil {
		s := string(*p.TextAlign)
		putOptional(styleTextAlign, &s)
	}
	if p.FontSize != nil {
		if *p.FontSize == 0 {
			bag[styleFontSize] = nil
		} else {
			bag[styleFontSize] = *p.FontSize
		}
	}
	return json.Marshal(bag)
}

func decodeOptionalString(raw json.RawMessage, null bool) (*string, error) {
	var s string
	if !null {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Ptr returns a pointer to v. Handy when building patches in code.
func Ptr[T any](v T) *T { return &v }
