package wikicollect

import (
	"context"
	"time"
)

// Export is a ledger entry for a completed artifact export.
type Export struct {
	ID          string    `json:"id"`
	SearchTerm  string    `json:"searchTerm"`
	Path        string    `json:"path"`
	Records     int       `json:"records"`
	ContentHash string    `json:"contentHash"`
	ExportedAt  time.Time `json:"exportedAt"`
}

// NewExport returns the ledger entry for a committed artifact.
func NewExport(a *Artifact) *Export {
	return &Export{
		SearchTerm:  a.SearchTerm,
		Path:        a.Path,
		Records:     a.Records,
		ContentHash: a.ContentHash,
	}
}

// Validate returns an error if the export contains invalid fields.
func (e *Export) Validate() error {
	if e.SearchTerm == "" {
		return Errorf(EINVALID, "export search term required")
	}
	if e.Path == "" {
		return Errorf(EINVALID, "export path required")
	}
	if e.Records < 0 {
		return Errorf(EINVALID, "export record count must not be negative")
	}
	return nil
}

// ExportService represents a service for recording completed exports.
type ExportService interface {
	// CreateExport records a completed export. ID and ExportedAt are set
	// by the service.
	CreateExport(ctx context.Context, export *Export) error

	// FindExports retrieves exports matching the filter, newest first.
	FindExports(ctx context.Context, filter ExportFilter) ([]*Export, error)
}

// ExportFilter represents a filter for FindExports.
type ExportFilter struct {
	SearchTerm *string `json:"searchTerm"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
