// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns brand names and uploaded filenames into URL-safe
// strings and object storage keys.
package slug

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses runs of whitespace, underscores and dots.
	separators = regexp.MustCompile(`[\s_.]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// maxLength caps generated slugs so storage keys stay short.
const maxLength = 64

// Generate creates a URL-friendly slug from the given string.
// Example: "Maison Aurore, Spring '26" -> "maison-aurore-spring-26"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, " ")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxLength {
		result = strings.TrimRight(result[:maxLength], "-")
	}
	return result
}

// AssetKey builds the object key for an uploaded asset:
// brands/<brandID>/<random8>-<slugged filename><ext>. The random prefix
// keeps re-uploads of the same filename from overwriting each other.
// ext replaces the filename's own extension when non-empty.
func AssetKey(brandID uuid.UUID, filename, ext string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if ext == "" {
		ext = strings.ToLower(path.Ext(base))
	}
	name := Generate(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "asset"
	}
	return "brands/" + brandID.String() + "/" + uuid.NewString()[:8] + "-" + name + ext
}
