package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MCP is a named JSON server configuration owned by one user. Context holds
// the raw JSON document as submitted.
type MCP struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Context   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Context validation failures. The messages are part of the API contract and
// surfaced verbatim to callers.
var (
	ErrContextNotJSON      = errors.New("Context must be valid JSON")
	ErrContextNoServers    = errors.New("Context must contain an 'mcpServers' object")
	ErrContextServersEmpty = errors.New("Context must contain at least one MCP server in 'mcpServers'")
)

// ValidateContext checks that an MCP context string parses as JSON, contains an
// object-typed "mcpServers" key, and that the object has at least one entry.
// Only unparsable input reports the JSON error; a parsable document of the
// wrong shape, a non-object top level included, is a missing-servers failure.
func ValidateContext(contextString string) error {
	var document any
	if err := json.Unmarshal([]byte(contextString), &document); err != nil {
		return ErrContextNotJSON
	}

	object, ok := document.(map[string]any)
	if !ok {
		return ErrContextNoServers
	}

	servers, ok := object["mcpServers"].(map[string]any)
	if !ok {
		return ErrContextNoServers
	}

	if len(servers) == 0 {
		return ErrContextServersEmpty
	}

	return nil
}
