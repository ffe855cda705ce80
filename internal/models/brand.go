// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a tenant of the dashboard. Its identity is the canonical palette,
// typography and logo that templates are checked against.
type Brand struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Identity  BrandIdentity `json:"identity"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BrandIdentity is the read-only snapshot the design engine consults for
// guardrail checks and live logo binding.
type BrandIdentity struct {
	PrimaryColor   string `json:"primary_color" yaml:"primaryColor"`
	SecondaryColor string `json:"secondary_color" yaml:"secondaryColor"`
	AccentColor    string `json:"accent_color" yaml:"accentColor"`
	HeadingFont    string `json:"heading_font" yaml:"headingFont"`
	BodyFont       string `json:"body_font" yaml:"bodyFont"`
	LogoURL        string `json:"logo_url" yaml:"logoUrl"`
}
