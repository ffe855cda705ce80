// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded asset files: it sniffs their content
// type and reads raster dimensions without decoding pixel data, so the
// canvas can size placed assets and reject image bombs up front.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"strings"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxPixels bounds width*height of an accepted raster image.
const MaxPixels = 50_000_000

// ErrUnsupportedType is returned for files the asset library does not accept.
var ErrUnsupportedType = errors.New("unsupported file type")

// allowedTypes are the content types accepted into an asset library.
var allowedTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Info describes an uploaded file.
type Info struct {
	ContentType string
	Width       int // 0 for vector images
	Height      int
}

// Raster reports whether the image has pixel dimensions.
func (i Info) Raster() bool {
	return i.Width > 0 && i.Height > 0
}

// Extension returns the canonical file extension for the content type.
func (i Info) Extension() string {
	switch i.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}

// SniffContentType detects the content type from the first bytes of data.
// SVGs sniff as XML or plain text, so those are checked for an <svg root.
func SniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	if base, _, _ := strings.Cut(ct, ";"); base == "text/xml" || base == "application/xml" || base == "text/plain" {
		if bytes.Contains(bytes.ToLower(head), []byte("<svg")) {
			return "image/svg+xml"
		}
	}
	return ct
}

// Probe sniffs data and, for raster formats, reads its dimensions.
func Probe(data []byte) (Info, error) {
	ct := SniffContentType(data)
	if !allowedTypes[ct] {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
	info := Info{ContentType: ct}
	if ct == "image/svg+xml" {
		return info, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("image has no pixels: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return Info{}, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	return info, nil
}
