// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is matched by errors.Is for any DuplicateIDError.
	ErrDuplicateID = errors.New("duplicate layer id")

	// ErrUnknownKind is returned for a layer type outside text/image/shape/logo.
	ErrUnknownKind = errors.New("unknown layer kind")

	// ErrInvalidDocument wraps schema validation failures of imported templates.
	ErrInvalidDocument = errors.New("invalid template document")
)

// DuplicateIDError reports an attempt to add a layer whose id is already
// present in the template. It always indicates a caller bug.
type DuplicateIDError struct {
	TemplateID string
	LayerID    string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("template %s: duplicate layer id %q", e.TemplateID, e.LayerID)
}

// Is makes errors.Is(err, ErrDuplicateID) true.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}
