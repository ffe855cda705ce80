// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the brandstudio JSON API.
// Handlers are grouped by resource (brands, templates, editor, assets) and
// receive their dependencies through the API struct. Editing operations go
// through a canvas.Controller built per request from the stored template
// and the caller's editor session.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandstudio/internal/canvas"
	"brandstudio/internal/design"
	"brandstudio/internal/models"
	"brandstudio/internal/session"
	"brandstudio/internal/store"
)

// maxJSONBody caps JSON request bodies. Template documents with a few
// hundred layers stay well below it.
const maxJSONBody = 2 << 20

// TemplateRepository persists template documents.
type TemplateRepository interface {
	Save(ctx context.Context, t *design.Template) error
	Load(ctx context.Context, id uuid.UUID) (*design.Template, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]design.Template, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BrandRepository persists brands and their identities.
type BrandRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context) ([]models.Brand, error)
	Create(ctx context.Context, b *models.Brand) (*models.Brand, error)
	UpdateIdentity(ctx context.Context, id uuid.UUID, identity models.BrandIdentity) (*models.Brand, error)
}

// AssetRepository persists asset library entries.
type AssetRepository interface {
	Create(ctx context.Context, a *models.Asset) (*models.Asset, error)
	List(ctx context.Context, brandID uuid.UUID) ([]models.Asset, error)
	ListByTag(ctx context.Context, brandID uuid.UUID, tag string) ([]models.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Asset, error)
}

// IdentityCache is the brand identity lookup used by the editor. Updates
// to a brand's identity invalidate its entry.
type IdentityCache interface {
	canvas.BrandIdentitySource
	Invalidate(ctx context.Context, brandID uuid.UUID)
}

// ObjectStore holds uploaded asset files.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
}

// Deps are the collaborators of the API handlers. Objects may be nil when
// object storage is not configured; uploads then answer 503.
type Deps struct {
	Templates  TemplateRepository
	Brands     BrandRepository
	Assets     AssetRepository
	Identities IdentityCache
	Sessions   *session.Store
	Objects    ObjectStore
	Logger     *slog.Logger
	Strict     bool // canvas strict mode
}

// API groups all HTTP handlers and their dependencies.
type API struct {
	templates  TemplateRepository
	brands     BrandRepository
	assets     AssetRepository
	identities IdentityCache
	sessions   *session.Store
	objects    ObjectStore
	logger     *slog.Logger
	strict     bool
}

// NewAPI creates the handler group.
func NewAPI(d Deps) *API {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		templates:  d.Templates,
		brands:     d.Brands,
		assets:     d.Assets,
		identities: d.Identities,
		sessions:   d.Sessions,
		objects:    d.Objects,
		logger:     logger,
		strict:     d.Strict,
	}
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a size-limited JSON body into v. An empty body leaves v
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readBody reads a size-limited raw body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
}

// uuidParam parses a UUID route parameter, answering 400 when malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// fail maps engine and collaborator errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without details.
func (a *API) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, design.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "template was changed by another editor; reload and retry")
	case errors.Is(err, design.ErrUnknownKind), errors.Is(err, design.ErrInvalidDocument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, canvas.ErrNotFound), errors.Is(err, canvas.ErrNoTemplate):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		a.logger.ErrorContext(r.Context(), op+" failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
