// Package runid provides batch run identifier generation.
package runid

import (
	"github.com/google/uuid"
)

// New returns the identifier for one batch run. UUIDv7 keeps run IDs
// time-ordered, so runs sort chronologically in the appended log file; if v7
// generation fails (exhausted entropy), a random v4 still keeps the run
// uniquely addressable.
func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
