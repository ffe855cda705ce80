// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"brandstudio/internal/design"
	"brandstudio/internal/models"
)

// Validation limits for brand, template and asset fields.
const (
	maxBrandNameLen    = 120
	maxTemplateNameLen = 200
	maxFontLen         = 100
	maxURLLen          = 2_000
	maxTags            = 20
	maxTagLen          = 40
	maxCanvasSide      = 10_000
)

// hexColor matches the #RRGGBB form the guardrail compares against.
var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// validateBrandName checks a brand name and returns the first error found.
func validateBrandName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Brand name is required."
	}
	if utf8.RuneCountInString(name) > maxBrandNameLen {
		return fmt.Sprintf("Brand name is too long (max %d characters).", maxBrandNameLen)
	}
	return ""
}

// validateIdentity checks a brand identity. Colors are optional but must
// be six-digit hex when given; shorthand like #FFF would never match a
// layer color exactly.
func validateIdentity(id models.BrandIdentity) string {
	colors := []struct{ field, value string }{
		{"Primary color", id.PrimaryColor},
		{"Secondary color", id.SecondaryColor},
		{"Accent color", id.AccentColor},
	}
	for _, c := range colors {
		if c.value != "" && !hexColor.MatchString(c.value) {
			return c.field + " must be a #RRGGBB hex color."
		}
	}
	if utf8.RuneCountInString(id.HeadingFont) > maxFontLen || utf8.RuneCountInString(id.BodyFont) > maxFontLen {
		return fmt.Sprintf("Font names are limited to %d characters.", maxFontLen)
	}
	if len(id.LogoURL) > maxURLLen {
		return "Logo URL is too long."
	}
	return ""
}

// validateTemplateName checks a template name.
func validateTemplateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Template name is required."
	}
	if utf8.RuneCountInString(name) > maxTemplateNameLen {
		return fmt.Sprintf("Template name is too long (max %d characters).", maxTemplateNameLen)
	}
	return ""
}

// validateDimensions checks a canvas size for resize requests.
func validateDimensions(d design.Dimensions) string {
	if d.Width <= 0 || d.Height <= 0 {
		return "Width and height must be positive."
	}
	if d.Width > maxCanvasSide || d.Height > maxCanvasSide {
		return fmt.Sprintf("Canvas sides are limited to %d pixels.", maxCanvasSide)
	}
	return ""
}

// validateTags checks asset tags before normalization.
func validateTags(tags []string) string {
	if len(tags) > maxTags {
		return fmt.Sprintf("At most %d tags are allowed.", maxTags)
	}
	for _, t := range tags {
		if utf8.RuneCountInString(strings.TrimSpace(t)) > maxTagLen {
			return fmt.Sprintf("Tags are limited to %d characters.", maxTagLen)
		}
	}
	return ""
}
