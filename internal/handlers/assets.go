// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"brandstudio/internal/imaging"
	"brandstudio/internal/models"
	"brandstudio/internal/slug"
)

// maxUploadSize is the maximum allowed asset file size (20 MB).
const maxUploadSize = 20 << 20

// ListAssets returns a brand's asset library, optionally narrowed by ?tag=.
func (a *API) ListAssets(w http.ResponseWriter, r *http.Request) {
	brandID, ok := uuidParam(w, r, "brandID")
	if !ok {
		return
	}

	var (
		list []models.Asset
		err  error
	)
	if tag := strings.TrimSpace(r.URL.Query().Get("tag")); tag != "" {
		list, err = a.assets.ListByTag(r.Context(), brandID, tag)
	} else {
		list, err = a.assets.List(r.Context(), brandID)
	}
	if err != nil {
		a.fail(w, r, "list assets", err)
		return
	}
	if list == nil {
		list = []models.Asset{}
	}
	writeJSON(w, http.StatusOK, list)
}

// formTags collects tags from repeated "tags" fields, each of which may
// also be a comma-separated list.
func formTags(values []string) []string {
	var tags []string
	for _, v := range values {
		tags = append(tags, strings.Split(v, ",")...)
	}
	return tags
}

// UploadAsset accepts a multipart "file" upload with optional "tags",
// checks its type and dimensions, stores it in object storage and records
// it in the brand's asset library.
func (a *API) UploadAsset(w http.ResponseWriter, r *http.Request) {
	brandID, ok := uuidParam(w, r, "brandID")
	if !ok {
		return
	}
	if a.objects == nil {
		writeError(w, http.StatusServiceUnavailable, "asset storage is not configured")
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large or malformed upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	tags := formTags(r.MultipartForm.Value["tags"])
	if msg := validateTags(tags); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	brand, err := a.brands.Find(r.Context(), brandID)
	if err != nil {
		a.fail(w, r, "find brand", err)
		return
	}
	if brand == nil {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	if len(data) > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	info, err := imaging.Probe(data)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedType) {
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	key := slug.AssetKey(brandID, header.Filename, info.Extension())
	if err := a.objects.Upload(r.Context(), key, info.ContentType, bytes.NewReader(data), int64(len(data))); err != nil {
		a.fail(w, r, "upload asset", err)
		return
	}

	asset, err := a.assets.Create(r.Context(), &models.Asset{
		BrandID:     brandID,
		URL:         a.objects.FileURL(key),
		Tags:        tags,
		Filename:    header.Filename,
		ContentType: info.ContentType,
		SizeBytes:   int64(len(data)),
		Width:       info.Width,
		Height:      info.Height,
		S3Key:       key,
	})
	if err != nil {
		// Don't leave an orphaned object behind.
		if delErr := a.objects.Delete(r.Context(), key); delErr != nil {
			a.logger.WarnContext(r.Context(), "orphaned asset object", "key", key, "error", delErr)
		}
		a.fail(w, r, "create asset", err)
		return
	}

	a.logger.InfoContext(r.Context(), "asset uploaded",
		"asset_id", asset.ID, "brand_id", brandID, "type", asset.ContentType, "size", asset.HumanSize())
	writeJSON(w, http.StatusCreated, asset)
}

// DeleteAsset removes an asset record and its stored file. Templates that
// placed the asset keep their layer; the URL simply stops resolving.
func (a *API) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	asset, err := a.assets.Delete(r.Context(), id)
	if err != nil {
		a.fail(w, r, "delete asset", err)
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	if a.objects != nil && asset.S3Key != "" {
		if err := a.objects.Delete(r.Context(), asset.S3Key); err != nil {
			a.logger.WarnContext(r.Context(), "asset object not deleted", "key", asset.S3Key, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
