// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandstudio/internal/design"
)

// ErrConflict is returned by Save when the stored template has moved past
// the version the caller loaded.
var ErrConflict = errors.New("template was modified concurrently")

// TemplateStore persists design templates. Layers are stored as one JSONB
// document per template in their wire shape, so unknown style keys survive
// a save/load cycle unchanged.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// templateColumns lists the columns selected in template queries.
const templateColumns = `id, brand_id, name, channel, kind, width, height, layers,
	version, created_at, updated_at`

// scanTemplate scans a template row and decodes its layer document.
func scanTemplate(scanner interface{ Scan(...any) error }) (*design.Template, error) {
	var (
		t      design.Template
		layers []byte
	)
	err := scanner.Scan(
		&t.ID, &t.BrandID, &t.Name, &t.Channel, &t.Kind,
		&t.Dimensions.Width, &t.Dimensions.Height, &layers,
		&t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(layers, &t.Layers); err != nil {
		return nil, fmt.Errorf("decode layers of template %s: %w", t.ID, err)
	}
	if t.Layers == nil {
		t.Layers = []design.Layer{}
	}
	return &t, nil
}

// encodeLayers marshals layers for the JSONB column. A nil slice is stored
// as an empty array.
func encodeLayers(layers []design.Layer) ([]byte, error) {
	if layers == nil {
		layers = []design.Layer{}
	}
	return json.Marshal(layers)
}

// Save inserts the template or, when its id already exists, replaces its
// name, channel, kind and layers and bumps the version. Brand and pixel
// dimensions are fixed at creation and never overwritten. On success t's
// version and timestamps are refreshed from the database.
//
// t.Version is the version the caller loaded (0 for a new template). An
// update only applies while the stored version still equals it; otherwise
// Save returns ErrConflict and t is left unchanged.
func (s *TemplateStore) Save(ctx context.Context, t *design.Template) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	layers, err := encodeLayers(t.Layers)
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO templates (id, brand_id, name, channel, kind, width, height, layers, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			channel = EXCLUDED.channel,
			kind = EXCLUDED.kind,
			layers = EXCLUDED.layers,
			version = templates.version + 1,
			updated_at = NOW()
		WHERE templates.version = $9
		RETURNING version, created_at, updated_at
	`, t.ID, t.BrandID, t.Name, t.Channel, t.Kind,
		t.Dimensions.Width, t.Dimensions.Height, layers, t.Version,
	).Scan(&t.Version, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("save template %s at version %d: %w", t.ID, t.Version, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

// Load retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) Load(ctx context.Context, id uuid.UUID) (*design.Template, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	return t, nil
}

// ListByBrand returns a brand's templates, most recently edited first.
func (s *TemplateStore) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]design.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+templateColumns+`
		FROM templates
		WHERE brand_id = $1
		ORDER BY updated_at DESC, name
	`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []design.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// Delete removes a template together with its layers. It reports whether
// a row was deleted.
func (s *TemplateStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	return n > 0, nil
}
