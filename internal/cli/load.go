// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"brandstudio/internal/design"
	"brandstudio/internal/models"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// loadTemplate reads and decodes a template document. "-" reads stdin.
func loadTemplate(path string, stdin io.Reader) (design.Template, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return design.Template{}, fmt.Errorf("read template %q: %w", path, err)
	}
	t, err := design.DecodeDocument(raw)
	if err != nil {
		return design.Template{}, fmt.Errorf("template %q: %w", path, err)
	}
	return t, nil
}

// brandFile is the on-disk brand description used by check.
type brandFile struct {
	Name     string               `yaml:"name"`
	Identity models.BrandIdentity `yaml:"identity"`
}

// loadBrand reads a brand YAML file. Unknown keys are rejected.
func loadBrand(path string) (brandFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return brandFile{}, fmt.Errorf("read brand %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var b brandFile
	if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
		return brandFile{}, fmt.Errorf("parse brand %q: %w", path, err)
	}
	return b, nil
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
