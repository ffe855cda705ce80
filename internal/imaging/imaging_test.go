// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func encoded(t *testing.T, w, h int, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestProbeRaster(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		ct   string
		ext  string
	}{
		{"png", encoded(t, 64, 32, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) }), "image/png", ".png"},
		{"jpeg", encoded(t, 64, 32, func(b *bytes.Buffer, i image.Image) error { return jpeg.Encode(b, i, nil) }), "image/jpeg", ".jpg"},
		{"gif", encoded(t, 64, 32, func(b *bytes.Buffer, i image.Image) error { return gif.Encode(b, i, nil) }), "image/gif", ".gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Probe(tt.data)
			if err != nil {
				t.Fatalf("Probe: %v", err)
			}
			if info.ContentType != tt.ct {
				t.Errorf("ContentType = %q, want %q", info.ContentType, tt.ct)
			}
			if info.Width != 64 || info.Height != 32 {
				t.Errorf("dimensions = %dx%d, want 64x32", info.Width, info.Height)
			}
			if !info.Raster() {
				t.Error("Raster() = false")
			}
			if got := info.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
		})
	}
}

func TestProbeSVG(t *testing.T) {
	svgs := [][]byte{
		[]byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`),
		[]byte(`<svg viewBox="0 0 10 10"><circle r="4"/></svg>`),
	}
	for _, data := range svgs {
		info, err := Probe(data)
		if err != nil {
			t.Fatalf("Probe(%s): %v", data, err)
		}
		if info.ContentType != "image/svg+xml" {
			t.Errorf("ContentType = %q, want image/svg+xml", info.ContentType)
		}
		if info.Raster() {
			t.Error("SVG should not report raster dimensions")
		}
		if info.Extension() != ".svg" {
			t.Errorf("Extension() = %q", info.Extension())
		}
	}
}

func TestProbeRejects(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		unsupported bool
	}{
		{"plain text", []byte("just some notes"), true},
		{"pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3"), true},
		{"html", []byte("<!DOCTYPE html><html></html>"), true},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n\x00\x00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Probe(tt.data)
			if err == nil {
				t.Fatal("Probe should fail")
			}
			if got := errors.Is(err, ErrUnsupportedType); got != tt.unsupported {
				t.Errorf("errors.Is(ErrUnsupportedType) = %v, want %v (err: %v)", got, tt.unsupported, err)
			}
		})
	}
}

func TestSniffContentTypeUsesHead(t *testing.T) {
	data := append([]byte("plain text header "), bytes.Repeat([]byte("x"), 600)...)
	data = append(data, []byte("<svg>")...)
	if got := SniffContentType(data); got == "image/svg+xml" {
		t.Error("an <svg tag past the first 512 bytes should not make the file an SVG")
	}
}
