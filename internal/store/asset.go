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
	"strings"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

// AssetStore handles asset library database operations.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// assetColumns lists the columns selected in asset queries.
const assetColumns = `id, brand_id, url, tags, filename, content_type, size_bytes,
	width, height, s3_key, created_at`

// scanAsset scans an asset row from the result set.
func scanAsset(scanner interface{ Scan(...any) error }) (*models.Asset, error) {
	var (
		a             models.Asset
		tags          []byte
		width, height sql.NullInt64
	)
	err := scanner.Scan(
		&a.ID, &a.BrandID, &a.URL, &tags, &a.Filename, &a.ContentType, &a.SizeBytes,
		&width, &height, &a.S3Key, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &a.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of asset %s: %w", a.ID, err)
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	a.Width = int(width.Int64)
	a.Height = int(height.Int64)
	return &a, nil
}

// nullInt stores zero dimensions as NULL, for formats without a size.
func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v > 0}
}

// Create inserts a new asset record and returns it with the generated ID.
// Tags are normalized before storage.
func (s *AssetStore) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	tags, err := json.Marshal(models.NormalizeTags(a.Tags))
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO assets (brand_id, url, tags, filename, content_type, size_bytes, width, height, s3_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+assetColumns,
		a.BrandID, a.URL, tags, a.Filename, a.ContentType, a.SizeBytes,
		nullInt(a.Width), nullInt(a.Height), a.S3Key,
	)
	created, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single asset by its UUID. Returns nil if not found.
func (s *AssetStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by id: %w", err)
	}
	return a, nil
}

// List returns a brand's assets, newest first.
func (s *AssetStore) List(ctx context.Context, brandID uuid.UUID) ([]models.Asset, error) {
	return s.query(ctx, "list assets", `
		SELECT `+assetColumns+`
		FROM assets
		WHERE brand_id = $1
		ORDER BY created_at DESC
	`, brandID)
}

// ListByTag returns a brand's assets carrying the tag, newest first. Tags
// are stored lowercased, so the match ignores case.
func (s *AssetStore) ListByTag(ctx context.Context, brandID uuid.UUID, tag string) ([]models.Asset, error) {
	needle, err := json.Marshal([]string{strings.ToLower(strings.TrimSpace(tag))})
	if err != nil {
		return nil, fmt.Errorf("list assets by tag: %w", err)
	}
	return s.query(ctx, "list assets by tag", `
		SELECT `+assetColumns+`
		FROM assets
		WHERE brand_id = $1 AND tags @> $2::jsonb
		ORDER BY created_at DESC
	`, brandID, needle)
}

func (s *AssetStore) query(ctx context.Context, op, q string, args ...any) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Delete removes an asset record and returns it so the caller can clean
// up the corresponding S3 object. Returns nil if not found.
func (s *AssetStore) Delete(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM assets WHERE id = $1
		RETURNING `+assetColumns, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete asset: %w", err)
	}
	return a, nil
}
