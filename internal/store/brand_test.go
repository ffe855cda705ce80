// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandstudio/internal/models"
)

var brandCols = []string{
	"id", "name", "primary_color", "secondary_color", "accent_color",
	"heading_font", "body_font", "logo_url", "created_at", "updated_at",
}

var aurore = models.BrandIdentity{
	PrimaryColor: "#FDFCF8", SecondaryColor: "#1F2A44", AccentColor: "#C9A878",
	HeadingFont: "Playfair Display", BodyFont: "Inter", LogoURL: "https://cdn.example.com/logo.svg",
}

func brandRow(id uuid.UUID, name string, ident models.BrandIdentity) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(brandCols).AddRow(
		id.String(), name, ident.PrimaryColor, ident.SecondaryColor, ident.AccentColor,
		ident.HeadingFont, ident.BodyFont, ident.LogoURL, now, now,
	)
}

func TestBrandStoreGet(t *testing.T) {
	db, mock := mockDB(t)
	s := NewBrandStore(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM brands WHERE id = \$1`).WithArgs(id).
		WillReturnRows(brandRow(id, "Aurore", aurore))

	got, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, aurore, got)
}

func TestBrandStoreGetNotFound(t *testing.T) {
	db, mock := mockDB(t)
	s := NewBrandStore(db)

	mock.ExpectQuery(`SELECT .* FROM brands`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT .* FROM brands`).WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBrandNotFound)

	b, err := s.Find(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestBrandStoreGetError(t *testing.T) {
	db, mock := mockDB(t)
	s := NewBrandStore(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT .* FROM brands`).WillReturnError(boom)

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBrandNotFound)
}

func TestBrandStoreList(t *testing.T) {
	db, mock := mockDB(t)
	s := NewBrandStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM brands ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(brandCols).
			AddRow(uuid.NewString(), "Aurore", "#FDFCF8", "", "", "", "Inter", "", now, now).
			AddRow(uuid.NewString(), "Borealis", "#000000", "", "", "", "Roboto", "", now, now))

	brands, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Borealis", brands[1].Name)
	assert.Equal(t, "Roboto", brands[1].Identity.BodyFont)
}

func TestBrandStoreCreate(t *testing.T) {
	db, mock := mockDB(t)
	s := NewBrandStore(db)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO brands`).
		WithArgs("Aurore", aurore.PrimaryColor, aurore.SecondaryColor, aurore.AccentColor,
			aurore.HeadingFont, aurore.BodyFont, aurore.LogoURL).
		WillReturnRows(brandRow(id, "Aurore", aurore))

	b, err := s.Create(context.Background(), &models.Brand{Name: "Aurore", Identity: aurore})
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, aurore, b.Identity)
}

func TestBrandStoreUpdateIdentity(t *testing.T) {
	db, mock := mockDB(t)
	s := NewBrandStore(db)
	id := uuid.New()

	updated := aurore
	updated.LogoURL = "https://cdn.example.com/logo-v2.svg"

	mock.ExpectQuery(`UPDATE brands SET`).
		WithArgs(updated.PrimaryColor, updated.SecondaryColor, updated.AccentColor,
			updated.HeadingFont, updated.BodyFont, updated.LogoURL, id).
		WillReturnRows(brandRow(id, "Aurore", updated))
	mock.ExpectQuery(`UPDATE brands SET`).WillReturnError(sql.ErrNoRows)

	b, err := s.UpdateIdentity(context.Background(), id, updated)
	require.NoError(t, err)
	assert.Equal(t, updated.LogoURL, b.Identity.LogoURL)

	b, err = s.UpdateIdentity(context.Background(), uuid.New(), updated)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestBrandStoreIntegration(t *testing.T) {
	db := testDB(t)
	brand := testBrand(t, db)
	s := NewBrandStore(db)
	ctx := context.Background()

	ident, err := s.Get(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "#C9A878", ident.AccentColor)

	ident.LogoURL = "https://cdn.example.com/logo-v2.svg"
	b, err := s.UpdateIdentity(ctx, brand.ID, ident)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, ident, b.Identity)
}
