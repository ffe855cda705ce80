// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandstudio/internal/models"
)

// testValkey starts an in-process Valkey stand-in and returns a client
// connected to it.
func testValkey(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type countingSource struct {
	identity models.BrandIdentity
	err      error
	calls    int
}

func (s *countingSource) Get(_ context.Context, _ uuid.UUID) (models.BrandIdentity, error) {
	s.calls++
	return s.identity, s.err
}

var identity = models.BrandIdentity{
	PrimaryColor: "#FDFCF8", AccentColor: "#C9A878", BodyFont: "Inter",
	LogoURL: "https://cdn.example.com/logo.svg",
}

func TestConnectValkey(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectValkey(mr.Host(), mr.Port(), "")
	require.NoError(t, err)
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

func TestConnectValkeyUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := ConnectValkey(host, port, "")
	assert.ErrorContains(t, err, "valkey ping")
}

func TestBrandCacheMissThenHit(t *testing.T) {
	mr, client := testValkey(t)
	src := &countingSource{identity: identity}
	bc := NewBrandCache(client, src, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	got, err := bc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
	assert.Equal(t, 1, src.calls)
	assert.True(t, mr.Exists(BrandKey(id)))
	assert.Equal(t, time.Minute, mr.TTL(BrandKey(id)))

	got, err = bc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
	assert.Equal(t, 1, src.calls, "second lookup is served from Valkey")
}

func TestBrandCacheInvalidate(t *testing.T) {
	_, client := testValkey(t)
	src := &countingSource{identity: identity}
	bc := NewBrandCache(client, src, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	_, err := bc.Get(ctx, id)
	require.NoError(t, err)

	src.identity.LogoURL = "https://cdn.example.com/logo-v2.svg"
	bc.Invalidate(ctx, id)

	got, err := bc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo-v2.svg", got.LogoURL)
	assert.Equal(t, 2, src.calls)
}

func TestBrandCacheInvalidateAll(t *testing.T) {
	mr, client := testValkey(t)
	bc := NewBrandCache(client, &countingSource{identity: identity}, time.Minute)
	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		bc.Set(ctx, id, identity)
	}
	require.NoError(t, mr.Set("session:keep-me", "x"))

	bc.InvalidateAll(ctx)

	for _, id := range ids {
		assert.False(t, mr.Exists(BrandKey(id)))
	}
	assert.True(t, mr.Exists("session:keep-me"), "only brand keys are removed")
}

func TestBrandCacheSourceError(t *testing.T) {
	mr, client := testValkey(t)
	boom := errors.New("brand not found")
	bc := NewBrandCache(client, &countingSource{err: boom}, time.Minute)
	id := uuid.New()

	_, err := bc.Get(context.Background(), id)
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(BrandKey(id)), "failures are not cached")
}

func TestBrandCacheCorruptEntry(t *testing.T) {
	mr, client := testValkey(t)
	src := &countingSource{identity: identity}
	bc := NewBrandCache(client, src, time.Minute)
	id := uuid.New()

	require.NoError(t, mr.Set(BrandKey(id), "{not json"))

	got, err := bc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
	assert.Equal(t, 1, src.calls)
}

func TestBrandCacheValkeyDownFallsBack(t *testing.T) {
	mr, client := testValkey(t)
	src := &countingSource{identity: identity}
	bc := NewBrandCache(client, src, time.Minute)
	mr.Close()

	got, err := bc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestBrandCacheExpiry(t *testing.T) {
	mr, client := testValkey(t)
	src := &countingSource{identity: identity}
	bc := NewBrandCache(client, src, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	_, _ = bc.Get(ctx, id)
	mr.FastForward(2 * time.Minute)
	_, _ = bc.Get(ctx, id)

	assert.Equal(t, 2, src.calls)
}

func TestNewBrandCacheDefaultTTL(t *testing.T) {
	_, client := testValkey(t)

	// TTL = 0 should use default.
	bc := NewBrandCache(client, &countingSource{}, 0)
	assert.Equal(t, DefaultBrandTTL, bc.ttl)
}

func TestBrandKey(t *testing.T) {
	id := uuid.MustParse("7f1d2a9e-0d7b-4d4a-9a55-2f1f4c2b8f10")
	assert.Equal(t, "brand:7f1d2a9e-0d7b-4d4a-9a55-2f1f4c2b8f10", BrandKey(id))
}
