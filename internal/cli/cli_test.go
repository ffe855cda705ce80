// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandstudio/internal/guardrail"
)

const templateDoc = `{
	"name": "Spring banner",
	"dimensions": {"width": 1000, "height": 500},
	"layers": [
		{"id": "title", "type": "text", "x": 5, "y": 5, "width": 90, "height": 20,
		 "style": {"zIndex": 2, "color": "%s", "fontFamily": "Inter Bold"}, "content": "Spring"},
		{"id": "bg", "type": "shape", "x": 0, "y": 0, "width": 100, "height": 100,
		 "style": {"zIndex": 0, "backgroundColor": "#fdfcf8"}},
		{"id": "photo", "type": "image", "x": 10, "y": 20, "width": 50, "height": 50,
		 "style": {"zIndex": 1}, "content": "https://cdn.example.com/p.png"}
	]
}`

const brandDoc = `name: Maison Aurore
identity:
  primaryColor: "#FDFCF8"
  secondaryColor: "#1F2A44"
  accentColor: "#C9A878"
  headingFont: Playfair Display
  bodyFont: Inter
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func templateFile(t *testing.T, titleColor string) string {
	return writeFile(t, "template.json", strings.Replace(templateDoc, "%s", titleColor, 1))
}

// run executes brandctl with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&Options{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	good := templateFile(t, "#C9A878")
	dup := writeFile(t, "dup.json", `{"name": "x", "dimensions": {"width": 10, "height": 10},
		"layers": [{"id": "a", "type": "logo"}, {"id": "a", "type": "logo"}]}`)

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok    "+good+" (3 layers)")

	out, err = run(t, "validate", good, dup)
	require.EqualError(t, err, "1 of 2 documents invalid")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, dup)
}

func TestValidateJSONOutput(t *testing.T) {
	missing := writeFile(t, "missing.json", `{"name": "x", "layers": []}`)

	out, err := run(t, "validate", "-o", "json", missing)
	require.Error(t, err)

	var results []validation
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.False(t, results[0].Valid)
	assert.Contains(t, results[0].Error, "dimensions")
}

func TestOrder(t *testing.T) {
	out, err := run(t, "order", "-o", "json", templateFile(t, "#C9A878"))
	require.NoError(t, err)

	var rows []orderRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)

	ids := []string{rows[0].ID, rows[1].ID, rows[2].ID}
	assert.Equal(t, []string{"bg", "photo", "title"}, ids)
	assert.Equal(t, "https://cdn.example.com/p.png", rows[1].Content)
	assert.Equal(t, "text", rows[2].Kind)
}

func TestOrderText(t *testing.T) {
	out, err := run(t, "order", templateFile(t, "#C9A878"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "bg")
	assert.Contains(t, lines[3], "Spring")
}

func TestPixels(t *testing.T) {
	out, err := run(t, "pixels", "--scale", "0.5", "-o", "json", templateFile(t, "#C9A878"))
	require.NoError(t, err)

	var rows []pixelRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)

	photo := rows[1]
	assert.Equal(t, "photo", photo.ID)
	assert.InDelta(t, 50, photo.Rect.X, 1e-9)
	assert.InDelta(t, 50, photo.Rect.Y, 1e-9)
	assert.InDelta(t, 250, photo.Rect.W, 1e-9)
	assert.InDelta(t, 125, photo.Rect.H, 1e-9)

	_, err = run(t, "pixels", "--scale", "0", templateFile(t, "#C9A878"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	brand := writeFile(t, "brand.yaml", brandDoc)

	t.Run("compliant", func(t *testing.T) {
		out, err := run(t, "check", "--brand", brand, templateFile(t, "#C9A878"))
		require.NoError(t, err)
		assert.Contains(t, out, "3 of 3 layers compliant")
	})

	t.Run("off-brand color", func(t *testing.T) {
		out, err := run(t, "check", "--brand", brand, templateFile(t, "#AA0000"))
		require.ErrorIs(t, err, ErrNonCompliant)
		assert.Contains(t, out, "FAIL  title: color #AA0000 is off-brand")
		assert.Contains(t, out, "2 of 3 layers compliant")
	})

	t.Run("yaml report", func(t *testing.T) {
		out, err := run(t, "check", "-b", brand, "-o", "yaml", templateFile(t, "#AA0000"))
		require.ErrorIs(t, err, ErrNonCompliant)
		assert.Contains(t, out, "compliant: false")
		assert.Contains(t, out, "attribute: "+guardrail.AttrColor)
	})

	t.Run("unknown brand key", func(t *testing.T) {
		bad := writeFile(t, "bad.yaml", "identity:\n  primaryColour: \"#FDFCF8\"\n")
		_, err := run(t, "check", "--brand", bad, templateFile(t, "#C9A878"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNonCompliant)
	})

	t.Run("missing brand file", func(t *testing.T) {
		_, err := run(t, "check", "--brand", filepath.Join(t.TempDir(), "nope.yaml"), templateFile(t, "#C9A878"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "order", "-o", "xml", templateFile(t, "#C9A878"))
	assert.ErrorContains(t, err, "unknown output format")
}
