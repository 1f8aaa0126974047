// Package ops implements the operation layer shared by the CLI and the
// MCP server. Each operation takes an open database handle plus config
// and returns a typed output struct.
package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/post"
)

// Batch limits
const (
	MaxIngestBatch  = 500
	DefaultGenToken = 1200
)

// normalizeCommunity validates and normalizes a community identifier.
func normalizeCommunity(raw string) (string, error) {
	norm := post.Normalize(raw)
	if norm == "" {
		return "", errors.NewInvalidRequest("community must not be empty")
	}
	return norm, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
