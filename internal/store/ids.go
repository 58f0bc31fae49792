package store

import (
	"strings"

	"github.com/google/uuid"
)

// NewListingID returns lst-<12 hex chars> taken from a random UUID (48 bits).
func NewListingID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "lst-" + hex[:12]
}
