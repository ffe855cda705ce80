// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

// Preset is a blank canvas new templates are created from.
type Preset struct {
	Key        string     `json:"key"`
	Channel    string     `json:"channel"`
	Kind       string     `json:"kind"`
	Dimensions Dimensions `json:"dimensions"`
}

var presets = []Preset{
	{Key: "instagram-post", Channel: "Instagram", Kind: "Post", Dimensions: Dimensions{Width: 1080, Height: 1080}},
	{Key: "instagram-portrait", Channel: "Instagram", Kind: "Portrait", Dimensions: Dimensions{Width: 1080, Height: 1350}},
	{Key: "instagram-story", Channel: "Instagram", Kind: "Story", Dimensions: Dimensions{Width: 1080, Height: 1920}},
	{Key: "facebook-post", Channel: "Facebook", Kind: "Post", Dimensions: Dimensions{Width: 1200, Height: 630}},
	{Key: "linkedin-post", Channel: "LinkedIn", Kind: "Post", Dimensions: Dimensions{Width: 1200, Height: 627}},
	{Key: "x-post", Channel: "X", Kind: "Post", Dimensions: Dimensions{Width: 1600, Height: 900}},
	{Key: "pinterest-pin", Channel: "Pinterest", Kind: "Pin", Dimensions: Dimensions{Width: 1000, Height: 1500}},
}

// Presets returns the built-in blank canvases.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByKey looks up a built-in preset.
func PresetByKey(key string) (Preset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
