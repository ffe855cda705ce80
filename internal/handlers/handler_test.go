// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// in-memory repositories, a recording object store and a miniredis-backed
// editor session store, wired into a chi router like production.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"brandstudio/internal/design"
	"brandstudio/internal/models"
	"brandstudio/internal/session"
	"brandstudio/internal/store"
)

var errBoom = errors.New("boom")

// memTemplates is an in-memory TemplateRepository mirroring the store's
// upsert and version semantics.
type memTemplates struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]design.Template
	saves   int
	saveErr error
}

func (m *memTemplates) Save(_ context.Context, t *design.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	if prev, ok := m.byID[t.ID]; ok {
		if prev.Version != t.Version {
			return store.ErrConflict
		}
		t.Version = prev.Version + 1
		t.CreatedAt = prev.CreatedAt
		t.Dimensions = prev.Dimensions
		t.BrandID = prev.BrandID
	} else {
		t.Version = 1
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	m.byID[t.ID] = t.Clone()
	m.saves++
	return nil
}

func (m *memTemplates) Load(_ context.Context, id uuid.UUID) (*design.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	c := t.Clone()
	return &c, nil
}

func (m *memTemplates) ListByBrand(_ context.Context, brandID uuid.UUID) ([]design.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []design.Template
	for _, t := range m.byID {
		if t.BrandID == brandID {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (m *memTemplates) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byID[id]
	delete(m.byID, id)
	return ok, nil
}

// memBrands is an in-memory BrandRepository that also serves as the
// identity cache, recording invalidations.
type memBrands struct {
	mu          sync.Mutex
	byID        map[uuid.UUID]models.Brand
	invalidated []uuid.UUID
	getErr      error
}

func (m *memBrands) Find(_ context.Context, id uuid.UUID) (*models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBrands) List(_ context.Context) ([]models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Brand
	for _, b := range m.byID {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBrands) Create(_ context.Context, b *models.Brand) (*models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *b
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.byID[created.ID] = created
	return &created, nil
}

func (m *memBrands) UpdateIdentity(_ context.Context, id uuid.UUID, identity models.BrandIdentity) (*models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	b.Identity = identity
	m.byID[id] = b
	return &b, nil
}

func (m *memBrands) Get(_ context.Context, id uuid.UUID) (models.BrandIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return models.BrandIdentity{}, m.getErr
	}
	b, ok := m.byID[id]
	if !ok {
		return models.BrandIdentity{}, errors.New("brand not found")
	}
	return b.Identity, nil
}

func (m *memBrands) Invalidate(_ context.Context, id uuid.UUID) {
	m.mu.Lock()
	m.invalidated = append(m.invalidated, id)
	m.mu.Unlock()
}

// memAssets is an in-memory AssetRepository.
type memAssets struct {
	mu        sync.Mutex
	list      []models.Asset
	createErr error
}

func (m *memAssets) Create(_ context.Context, a *models.Asset) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *a
	created.ID = uuid.New()
	created.Tags = models.NormalizeTags(a.Tags)
	created.CreatedAt = time.Now()
	m.list = append(m.list, created)
	return &created, nil
}

func (m *memAssets) List(_ context.Context, brandID uuid.UUID) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Asset
	for _, a := range m.list {
		if a.BrandID == brandID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssets) ListByTag(ctx context.Context, brandID uuid.UUID, tag string) ([]models.Asset, error) {
	all, _ := m.List(ctx, brandID)
	var out []models.Asset
	for _, a := range all {
		if a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssets) Delete(_ context.Context, id uuid.UUID) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.list {
		if a.ID == id {
			m.list = slices.Delete(m.list, i, i+1)
			return &a, nil
		}
	}
	return nil, nil
}

// memObjects records uploads and deletions.
type memObjects struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	uploadErr error
}

func (m *memObjects) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return nil
}

func (m *memObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	m.mu.Unlock()
	return nil
}

func (m *memObjects) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	templates *memTemplates
	brands    *memBrands
	assets    *memAssets
	objects   *memObjects
	valkey    *miniredis.Miniredis
	api       *API
	router    chi.Router
	brand     models.Brand
	session   string
}

type envOption func(*Deps)

func strictCanvas() envOption { return func(d *Deps) { d.Strict = true } }

func withoutStorage() envOption { return func(d *Deps) { d.Objects = nil } }

// newTestEnv wires an API with one seeded brand.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		templates: &memTemplates{byID: map[uuid.UUID]design.Template{}},
		brands:    &memBrands{byID: map[uuid.UUID]models.Brand{}},
		assets:    &memAssets{},
		objects:   &memObjects{objects: map[string][]byte{}},
		valkey:    mr,
		session:   "test-editor-session",
	}

	brand, err := env.brands.Create(context.Background(), &models.Brand{
		Name: "Maison Aurore",
		Identity: models.BrandIdentity{
			PrimaryColor:   "#FDFCF8",
			SecondaryColor: "#1F2A44",
			AccentColor:    "#C9A878",
			HeadingFont:    "Playfair Display",
			BodyFont:       "Inter",
			LogoURL:        "https://cdn.example.com/aurore/logo.svg",
		},
	})
	require.NoError(t, err)
	env.brand = *brand

	deps := Deps{
		Templates:  env.templates,
		Brands:     env.brands,
		Assets:     env.assets,
		Identities: env.brands,
		Sessions:   session.NewStore(client, time.Hour, false),
		Objects:    env.objects,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	env.api = NewAPI(deps)
	r := chi.NewRouter()
	r.Route("/api", env.api.Routes)
	env.router = r
	return env
}

// seedTemplate stores an empty 1080x1080 template for the env's brand.
func (env *testEnv) seedTemplate(t *testing.T) design.Template {
	t.Helper()
	preset, ok := design.PresetByKey("instagram-post")
	require.True(t, ok)
	tmpl := design.NewTemplate(env.brand.ID, "Launch post", preset)
	require.NoError(t, env.templates.Save(context.Background(), &tmpl))
	return tmpl
}

func (env *testEnv) stored(t *testing.T, id uuid.UUID) design.Template {
	t.Helper()
	tmpl, err := env.templates.Load(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, tmpl)
	return *tmpl
}

// do sends a request with the env's editor session header. body may be
// nil, a string, a []byte, or a value to encode as JSON.
func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(session.HeaderName, env.session)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a response body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "body: %s", rr.Body.String())
}

// errorMessage extracts the "error" field of a JSON error response.
func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rr, &body)
	return body["error"]
}
