// Package participant defines participant identity and the rotation roster for
// a competition.
package participant

import (
	"strings"

	"github.com/sesigl/ai-coding-arena/internal/errors"
)

// ID is an opaque, non-empty participant identifier.
type ID string

// System is the reserved identifier for events and stats that are attributed
// to the competition itself rather than to any participant.
const System ID = "__system__"

// NewID validates and normalizes a raw identifier token. Surrounding
// whitespace is trimmed; an empty result or the reserved system identifier is
// rejected.
func NewID(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("participant identifier cannot be empty")
	}
	if ID(trimmed) == System {
		return "", errors.New("participant identifier is reserved")
	}
	return ID(trimmed), nil
}

// String returns the identifier token.
func (id ID) String() string { return string(id) }

// IsSystem reports whether the identifier is the reserved system sentinel.
func (id ID) IsSystem() bool { return id == System }
