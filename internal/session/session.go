// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session provides Valkey-backed editor view state. Each editor is
// identified by a random id carried in a cookie or the X-Editor-Session
// header, and keeps one State per template it has open: the selected
// layer and the zoom factor. None of it is persisted with the template.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the editor session cookie.
	CookieName = "bs_editor"

	// HeaderName carries the editor session id for non-browser clients. It
	// wins over the cookie when both are present.
	HeaderName = "X-Editor-Session"

	// DefaultTTL is how long editor state lives in Valkey before automatic expiry.
	DefaultTTL = 12 * time.Hour

	// keyPrefix namespaces editor keys in Valkey to avoid collisions.
	keyPrefix = "editor:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// State is the view state of one template in one editor.
type State struct {
	TemplateID    uuid.UUID `json:"template_id"`
	ActiveLayerID string    `json:"active_layer_id,omitempty"`
	Zoom          float64   `json:"zoom"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Store manages editor state lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates an editor state store backed by the given Valkey client.
// secure marks the cookie Secure; enable it behind TLS.
func NewStore(client *redis.Client, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl, secure: secure}
}

// ID returns the editor session id carried by the request, or "".
func ID(r *http.Request) string {
	if id := r.Header.Get(HeaderName); id != "" {
		return id
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Ensure returns the request's editor session id, issuing a new one when
// the request carries none. The id is always echoed in the response header
// and cookie so the client can send it back.
func (s *Store) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	id := ID(r)
	if id == "" {
		var err error
		if id, err = generateID(); err != nil {
			return "", fmt.Errorf("session create: %w", err)
		}
	}

	w.Header().Set(HeaderName, id)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return id, nil
}

func stateKey(sessionID string, templateID uuid.UUID) string {
	return keyPrefix + sessionID + ":" + templateID.String()
}

// Load retrieves the editor's state for a template. Returns nil if the
// editor has no state for it.
func (s *Store) Load(ctx context.Context, sessionID string, templateID uuid.UUID) (*State, error) {
	if sessionID == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, stateKey(sessionID, templateID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Expired or never saved
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var st State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &st, nil
}

// Save stores the editor's state for st.TemplateID and resets its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, st *State) error {
	if sessionID == "" {
		return errors.New("session save: empty session id")
	}
	st.UpdatedAt = time.Now()

	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, stateKey(sessionID, st.TemplateID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// Forget drops every editor's state for a template, used when the
// template is deleted.
func (s *Store) Forget(ctx context.Context, templateID uuid.UUID) error {
	pattern := keyPrefix + "*:" + templateID.String()
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("session scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("session delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
