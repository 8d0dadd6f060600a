package shared

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed, process-unique identifier. The random part is a
// hex-encoded UUIDv4 so identifiers are never reused across sessions.
func NewID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
