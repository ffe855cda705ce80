// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/template.schema.json
var templateSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func templateSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(templateSchemaJSON))
	})
	return schema, schemaErr
}

// ValidateDocument checks raw template JSON against the document schema.
// Failures are wrapped in ErrInvalidDocument and list every violation.
func ValidateDocument(raw []byte) error {
	s, err := templateSchema()
	if err != nil {
		return fmt.Errorf("load template schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}

// DecodeDocument validates raw JSON and decodes it into a Template. Layer
// ids must be unique within the document.
func DecodeDocument(raw []byte) (Template, error) {
	if err := ValidateDocument(raw); err != nil {
		return Template{}, err
	}

	var t Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	seen := make(map[string]bool, len(t.Layers))
	for _, l := range t.Layers {
		if seen[l.ID] {
			return Template{}, &DuplicateIDError{TemplateID: t.ID.String(), LayerID: l.ID}
		}
		seen[l.ID] = true
	}
	if t.Layers == nil {
		t.Layers = []Layer{}
	}
	return t, nil
}
