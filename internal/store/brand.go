// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

// ErrBrandNotFound is returned by BrandStore.Get for an unknown brand.
var ErrBrandNotFound = errors.New("brand not found")

// BrandStore handles all brand-related database operations.
type BrandStore struct {
	db *sql.DB
}

// NewBrandStore creates a new BrandStore with the given database connection.
func NewBrandStore(db *sql.DB) *BrandStore {
	return &BrandStore{db: db}
}

// brandColumns lists the columns selected in brand queries.
const brandColumns = `id, name, primary_color, secondary_color, accent_color,
	heading_font, body_font, logo_url, created_at, updated_at`

// scanBrand scans a brand row from the result set.
func scanBrand(scanner interface{ Scan(...any) error }) (*models.Brand, error) {
	var b models.Brand
	err := scanner.Scan(
		&b.ID, &b.Name, &b.Identity.PrimaryColor, &b.Identity.SecondaryColor, &b.Identity.AccentColor,
		&b.Identity.HeadingFont, &b.Identity.BodyFont, &b.Identity.LogoURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Find retrieves a brand by its UUID. Returns nil if not found.
func (s *BrandStore) Find(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand: %w", err)
	}
	return b, nil
}

// Get returns the identity snapshot of a brand, or ErrBrandNotFound.
func (s *BrandStore) Get(ctx context.Context, id uuid.UUID) (models.BrandIdentity, error) {
	b, err := s.Find(ctx, id)
	if err != nil {
		return models.BrandIdentity{}, err
	}
	if b == nil {
		return models.BrandIdentity{}, fmt.Errorf("%w: %s", ErrBrandNotFound, id)
	}
	return b.Identity, nil
}

// List returns all brands ordered by name.
func (s *BrandStore) List(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []models.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, *b)
	}
	return brands, rows.Err()
}

// Create inserts a new brand and returns it with the generated ID.
func (s *BrandStore) Create(ctx context.Context, b *models.Brand) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO brands (name, primary_color, secondary_color, accent_color, heading_font, body_font, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+brandColumns,
		b.Name, b.Identity.PrimaryColor, b.Identity.SecondaryColor, b.Identity.AccentColor,
		b.Identity.HeadingFont, b.Identity.BodyFont, b.Identity.LogoURL,
	)
	created, err := scanBrand(row)
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return created, nil
}

// UpdateIdentity replaces a brand's palette, typography and logo. Returns
// nil if the brand does not exist.
func (s *BrandStore) UpdateIdentity(ctx context.Context, id uuid.UUID, identity models.BrandIdentity) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE brands SET
			primary_color = $1, secondary_color = $2, accent_color = $3,
			heading_font = $4, body_font = $5, logo_url = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+brandColumns,
		identity.PrimaryColor, identity.SecondaryColor, identity.AccentColor,
		identity.HeadingFont, identity.BodyFont, identity.LogoURL, id,
	)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update brand identity: %w", err)
	}
	return b, nil
}
