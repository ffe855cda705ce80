// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"brandstudio/internal/design"
	"brandstudio/internal/models"
)

// DemoBrandName is the brand created by Seed.
const DemoBrandName = "Maison Aurore"

// DemoIdentity is the palette and typography of the seeded demo brand.
var DemoIdentity = models.BrandIdentity{
	PrimaryColor:   "#FDFCF8",
	SecondaryColor: "#1F2A44",
	AccentColor:    "#C9A878",
	HeadingFont:    "Playfair Display",
	BodyFont:       "Inter",
	LogoURL:        "https://cdn.brandstudio.local/demo/logo.svg",
}

// Seed populates the database with initial development data: one demo
// brand and an empty Instagram post template for it. It does nothing when
// any brand already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM brands").Scan(&count); err != nil {
		return fmt.Errorf("seed check brands: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var brandID uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO brands (name, primary_color, secondary_color, accent_color, heading_font, body_font, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, DemoBrandName,
		DemoIdentity.PrimaryColor, DemoIdentity.SecondaryColor, DemoIdentity.AccentColor,
		DemoIdentity.HeadingFont, DemoIdentity.BodyFont, DemoIdentity.LogoURL,
	).Scan(&brandID)
	if err != nil {
		return fmt.Errorf("seed insert brand: %w", err)
	}

	preset, _ := design.PresetByKey("instagram-post")
	tmpl := design.NewTemplate(brandID, "Instagram post", preset)
	layers, err := json.Marshal(tmpl.Layers)
	if err != nil {
		return fmt.Errorf("seed marshal layers: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO templates (id, brand_id, name, channel, kind, width, height, layers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, tmpl.ID, brandID, tmpl.Name, tmpl.Channel, tmpl.Kind,
		tmpl.Dimensions.Width, tmpl.Dimensions.Height, layers,
	)
	if err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo brand",
		"brand", DemoBrandName,
		"brand_id", brandID,
		"template_id", tmpl.ID,
	)
	return nil
}
